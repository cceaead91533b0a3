package eventlog

// Collaborator interfaces required from outside this core. All of them are
// injected at dispatcher construction; none are looked up from ambient
// state. Implementations should be fire-and-forget from the dispatcher's
// point of view.

// SampleBuilder constructs a Sample from raw bytes and the URL they were
// fetched from. A nil result means the content is unrecognized or empty,
// which is a legitimate no-op for the caller.
type SampleBuilder interface {
	BuildSample(data []byte, url string) *Sample
}

// ScanService submits a logged file to an external malware-scan service.
// Invoked unconditionally per logged file.
type ScanService interface {
	Analyze(data []byte, sample *Sample, baseDir string)
}

// DynamicExecutor submits a logged file to an external dynamic-execution
// service. Invoked only for JAR-format samples.
type DynamicExecutor interface {
	Analyze(data []byte, sample *Sample, baseDir string, params map[string]string)
}

// URLClassifier classifies a URL.
type URLClassifier interface {
	ClassifyURL(url string)
}

// ContentClassifier classifies file content, keyed by its MD5 checksum.
type ContentClassifier interface {
	ClassifyContent(data []byte, md5 string)
}

// CertificateFetcher retrieves the TLS certificate for a URL.
type CertificateFetcher interface {
	FetchCertificate(url string)
}

// Collaborators bundles the external services the dispatcher depends on.
// Nil fields are replaced with no-op implementations at construction, so a
// partially wired dispatcher is valid.
type Collaborators struct {
	Samples  SampleBuilder
	Scanner  ScanService
	Executor DynamicExecutor
	URLs     URLClassifier
	Content  ContentClassifier
	Certs    CertificateFetcher
}

type noopSampleBuilder struct{}

func (noopSampleBuilder) BuildSample([]byte, string) *Sample { return nil }

type noopScanService struct{}

func (noopScanService) Analyze([]byte, *Sample, string) {}

type noopDynamicExecutor struct{}

func (noopDynamicExecutor) Analyze([]byte, *Sample, string, map[string]string) {}

type noopURLClassifier struct{}

func (noopURLClassifier) ClassifyURL(string) {}

type noopContentClassifier struct{}

func (noopContentClassifier) ClassifyContent([]byte, string) {}

type noopCertificateFetcher struct{}

func (noopCertificateFetcher) FetchCertificate(string) {}

func (c Collaborators) withDefaults() Collaborators {
	if c.Samples == nil {
		c.Samples = noopSampleBuilder{}
	}
	if c.Scanner == nil {
		c.Scanner = noopScanService{}
	}
	if c.Executor == nil {
		c.Executor = noopDynamicExecutor{}
	}
	if c.URLs == nil {
		c.URLs = noopURLClassifier{}
	}
	if c.Content == nil {
		c.Content = noopContentClassifier{}
	}
	if c.Certs == nil {
		c.Certs = noopCertificateFetcher{}
	}
	return c
}
