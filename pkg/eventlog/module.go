package eventlog

// EventName is the string key identifying a logging operation, used for
// handler lookup.
type EventName string

const (
	EventSetURL          EventName = "set_url"
	EventAddBehaviorWarn EventName = "add_behavior_warn"
	EventAddCodeSnippet  EventName = "add_code_snippet"
	EventLogFile         EventName = "log_file"
	EventExport          EventName = "export"
	EventLogEvent        EventName = "log_event"
	EventLogConnection   EventName = "log_connection"
	EventLogLocation     EventName = "log_location"
	EventLogExploit      EventName = "log_exploit_event"
	EventLogWarning      EventName = "log_warning"
	EventLogCertificate  EventName = "log_certificate"
)

// AnalysisEvent derives the per-analysis-module event name, e.g.
// AnalysisEvent("virustotal") == "log_virustotal".
func AnalysisEvent(module string) EventName { return EventName("log_" + module) }

// Backend is a pluggable sink that optionally implements some subset of the
// event-handling capabilities below. Omitting a capability means silent
// non-participation, not an error.
type Backend interface {
	Name() string
}

// URLSetter receives the URL under analysis.
type URLSetter interface {
	SetURL(url string)
}

// BehaviorRecorder receives behavior warnings.
type BehaviorRecorder interface {
	AddBehaviorWarn(w BehaviorWarning)
}

// SnippetRecorder receives code snippets.
type SnippetRecorder interface {
	AddCodeSnippet(s CodeSnippet)
}

// FileRecorder receives analyzed file samples.
type FileRecorder interface {
	LogFile(sample *Sample, url string, params map[string]string)
}

// Exporter flushes accumulated state to the output directory.
type Exporter interface {
	Export(dir string)
}

// EventRecorder is notified when an analysis run is finalized.
type EventRecorder interface {
	LogEvent(dir string)
}

// ConnectionRecorder receives navigation edges between pages or resources.
type ConnectionRecorder interface {
	LogConnection(source, destination, method string, flags Flags)
}

// LocationRecorder receives per-URL file metadata.
type LocationRecorder interface {
	LogLocation(url string, loc Location, flags Flags)
}

// ExploitRecorder receives raw exploit events.
type ExploitRecorder interface {
	LogExploitEvent(e ExploitEvent)
}

// WarningRecorder receives free-form warnings.
type WarningRecorder interface {
	LogWarning(data string)
}

// CertificateRecorder receives TLS certificates observed per URL.
type CertificateRecorder interface {
	LogCertificate(url, certificate string)
}

// AnalysisReportRecorder receives reports produced by external analysis
// modules. AnalysisModules declares which log_<module> events the backend
// handles; the declaration is read once at registration.
type AnalysisReportRecorder interface {
	AnalysisModules() []string
	LogAnalysisReport(module string, sample *Sample, report []byte)
}

// FormatProvider declares which output-format identifiers a backend
// supports.
type FormatProvider interface {
	Formats() []string
}

// capabilityProbes maps each fixed event name to its capability check.
// Probes run once per module at registration, never at dispatch time.
var capabilityProbes = map[EventName]func(Backend) bool{
	EventSetURL:          func(b Backend) bool { _, ok := b.(URLSetter); return ok },
	EventAddBehaviorWarn: func(b Backend) bool { _, ok := b.(BehaviorRecorder); return ok },
	EventAddCodeSnippet:  func(b Backend) bool { _, ok := b.(SnippetRecorder); return ok },
	EventLogFile:         func(b Backend) bool { _, ok := b.(FileRecorder); return ok },
	EventExport:          func(b Backend) bool { _, ok := b.(Exporter); return ok },
	EventLogEvent:        func(b Backend) bool { _, ok := b.(EventRecorder); return ok },
	EventLogConnection:   func(b Backend) bool { _, ok := b.(ConnectionRecorder); return ok },
	EventLogLocation:     func(b Backend) bool { _, ok := b.(LocationRecorder); return ok },
	EventLogExploit:      func(b Backend) bool { _, ok := b.(ExploitRecorder); return ok },
	EventLogWarning:      func(b Backend) bool { _, ok := b.(WarningRecorder); return ok },
	EventLogCertificate:  func(b Backend) bool { _, ok := b.(CertificateRecorder); return ok },
}

// capabilities computes the explicit event-name set a backend declares.
func capabilities(b Backend) map[EventName]struct{} {
	caps := make(map[EventName]struct{})
	for name, probe := range capabilityProbes {
		if probe(b) {
			caps[name] = struct{}{}
		}
	}
	if ar, ok := b.(AnalysisReportRecorder); ok {
		for _, m := range ar.AnalysisModules() {
			caps[AnalysisEvent(m)] = struct{}{}
		}
	}
	return caps
}
