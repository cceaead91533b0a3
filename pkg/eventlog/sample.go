package eventlog

// Sample is the analysis engine's structured record of a downloaded
// artifact. Backends receive a value copy per broadcast so that no backend
// can mutate another's view.
type Sample struct {
	Content     []byte `json:"content,omitempty"`
	MD5         string `json:"md5"`
	SHA256      string `json:"sha256"`
	Size        int    `json:"fsize"`
	ContentType string `json:"ctype"` // whatever the server says it is
	MIMEType    string `json:"mtype"` // calculated MIME type
	Type        string `json:"type"`  // format tag, e.g. JAR, PDF, APK
	Raw         []byte `json:"-"`     // optional raw payload
}

// Clone returns a deep copy of the sample, including byte slices.
func (s *Sample) Clone() *Sample {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Content != nil {
		cp.Content = append([]byte(nil), s.Content...)
	}
	if s.Raw != nil {
		cp.Raw = append([]byte(nil), s.Raw...)
	}
	return &cp
}

// DefaultMethod is the attribution method recorded when the caller does not
// supply one.
const DefaultMethod = "Dynamic Analysis"

// BehaviorWarning is a human-readable record of a suspicious or notable
// action. It is the common funnel for security-relevant events: redirects,
// certificates and exploits all route through it.
type BehaviorWarning struct {
	Description string `json:"description"`
	CVE         string `json:"cve,omitempty"`
	Method      string `json:"method"`
}

// CodeSnippet records a piece of code observed during emulation and its
// relationship to the page under analysis.
type CodeSnippet struct {
	Snippet      string `json:"snippet"`
	Language     string `json:"language"`
	Relationship string `json:"relationship"`
	Method       string `json:"method"`
}

// ExploitEvent records an exploitation attempt against an emulated
// component.
type ExploitEvent struct {
	URL         string `json:"url"`
	Module      string `json:"module"`
	Description string `json:"description"`
	CVE         string `json:"cve,omitempty"`
	Data        []byte `json:"data,omitempty"`
}

// Location carries per-URL file metadata for log_location broadcasts.
type Location struct {
	Content     []byte `json:"content,omitempty"`
	MD5         string `json:"md5"`
	SHA256      string `json:"sha256"`
	Size        int    `json:"fsize"`
	ContentType string `json:"ctype"`
	MIMEType    string `json:"mtype"`
}

// Flags carries optional additional information on a broadcast. A nil map
// means no flags; callers never share a mutable default.
type Flags map[string]interface{}
