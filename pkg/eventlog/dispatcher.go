package eventlog

import (
	"fmt"

	"github.com/google/uuid"

	"webhound/pkg/structlog"
)

// minSnippetLength is the minimum length below which a checked code snippet
// is treated as noise and dropped.
const minSnippetLength = 4

// formatJAR marks samples that are additionally handed to the dynamic
// execution service.
const formatJAR = "JAR"

// Dispatcher is the event-logging facade of the analysis engine. It exposes
// one operation per event kind; each operation resolves the handlers for the
// event name and invokes them in module-registration order, isolating
// per-handler faults so one misbehaving backend cannot starve the rest or
// abort the analysis session.
type Dispatcher struct {
	registry *Registry
	resolver *Resolver
	col      Collaborators
	log      *structlog.Logger

	runID       string
	baseDir     string
	fileLogging bool
}

// NewDispatcher wires a dispatcher for one analysis session. A nil logger
// falls back to a default stdout logger; nil collaborators are replaced with
// no-ops.
func NewDispatcher(registry *Registry, cfg Config, col Collaborators, log *structlog.Logger) *Dispatcher {
	if log == nil {
		log = structlog.NewLogger("webhound", structlog.LevelInfo, nil)
	}
	runID := uuid.NewString()
	return &Dispatcher{
		registry:    registry,
		resolver:    NewResolver(registry),
		col:         col.withDefaults(),
		log:         log.WithFields(structlog.Fields{"run_id": runID}),
		runID:       runID,
		baseDir:     cfg.OutputDir,
		fileLogging: cfg.FileLogging,
	}
}

// RunID returns the generated identifier for this analysis session.
func (d *Dispatcher) RunID() string { return d.runID }

// SetBaseDir points the session at its output directory.
func (d *Dispatcher) SetBaseDir(dir string) { d.baseDir = dir }

// broadcast invokes each resolved handler for the event, in order. A fault
// in one handler is recorded and the remaining handlers still run.
func (d *Dispatcher) broadcast(event EventName, call func(Backend)) {
	eventsDispatched.WithLabelValues(string(event)).Inc()
	for _, b := range d.resolver.Resolve(event) {
		d.invoke(event, b, call)
	}
}

func (d *Dispatcher) invoke(event EventName, b Backend, call func(Backend)) {
	defer func() {
		if r := recover(); r != nil {
			handlerFaults.WithLabelValues(b.Name(), string(event)).Inc()
			d.log.Error("backend handler failed", structlog.Fields{
				"module": b.Name(),
				"event":  string(event),
				"panic":  fmt.Sprint(r),
			})
		}
	}()
	call(b)
}

// SetURL announces the URL under analysis to every interested backend.
func (d *Dispatcher) SetURL(url string) {
	d.broadcast(EventSetURL, func(b Backend) { b.(URLSetter).SetURL(url) })
}

// AddBehaviorWarn records a behavior warning. This is the single funnel
// through which redirects, certificates and exploit reports reach the
// general warning channel; the description is also written to the process
// warning log.
func (d *Dispatcher) AddBehaviorWarn(description, cve, method string) {
	if method == "" {
		method = DefaultMethod
	}
	w := BehaviorWarning{Description: description, CVE: cve, Method: method}

	d.broadcast(EventAddBehaviorWarn, func(b Backend) { b.(BehaviorRecorder).AddBehaviorWarn(w) })

	behaviorWarnings.Inc()
	d.log.Warn(description, structlog.Fields{"cve": cve})
}

// AddCodeSnippet records an observed code snippet. When check is set,
// snippets below the minimum-significance length are dropped silently and
// never reach any backend.
func (d *Dispatcher) AddCodeSnippet(snippet, language, relationship, method string, check bool) {
	if check && len(snippet) < minSnippetLength {
		return
	}
	if method == "" {
		method = DefaultMethod
	}
	s := CodeSnippet{Snippet: snippet, Language: language, Relationship: relationship, Method: method}

	d.broadcast(EventAddCodeSnippet, func(b Backend) { b.(SnippetRecorder).AddCodeSnippet(s) })
}

// LogFile builds a sample from the raw bytes and routes it to backends and
// the external analysis services. Unrecognized or empty content yields a nil
// sample and no side effects.
func (d *Dispatcher) LogFile(data []byte, url string, params map[string]string) *Sample {
	sample := d.col.Samples.BuildSample(data, url)
	if sample == nil {
		return nil
	}
	return d.logBuiltFile(sample, data, url, params)
}

func (d *Dispatcher) logBuiltFile(sample *Sample, data []byte, url string, params map[string]string) *Sample {
	d.broadcast(EventLogFile, func(b Backend) { b.(FileRecorder).LogFile(sample.Clone(), url, params) })

	d.col.Scanner.Analyze(data, sample, d.baseDir)

	if sample.Type == formatJAR {
		d.col.Executor.Analyze(data, sample, d.baseDir, params)
	}

	d.col.Content.ClassifyContent(data, sample.MD5)
	return sample
}

// LogEvent finalizes the analysis run: backends export their accumulated
// state, then receive the log_event notification.
func (d *Dispatcher) LogEvent() {
	d.broadcast(EventExport, func(b Backend) { b.(Exporter).Export(d.baseDir) })
	d.broadcast(EventLogEvent, func(b Backend) { b.(EventRecorder).LogEvent(d.baseDir) })

	if d.fileLogging {
		d.log.Info(fmt.Sprintf("analysis logs saved at %s", d.baseDir), nil)
	}
}

// LogConnection records the navigation edge between two pages and the
// mechanism (http-redirect, href, link, iframe, ...) that caused it.
func (d *Dispatcher) LogConnection(source, destination, method string, flags Flags) {
	d.broadcast(EventLogConnection, func(b Backend) {
		b.(ConnectionRecorder).LogConnection(source, destination, method, flags)
	})
}

// LogLocation records file metadata for a given URL.
func (d *Dispatcher) LogLocation(url string, loc Location, flags Flags) {
	d.broadcast(EventLogLocation, func(b Backend) { b.(LocationRecorder).LogLocation(url, loc, flags) })
}

// LogExploitEvent records an exploitation attempt. When forward is set the
// event is first routed through AddBehaviorWarn as "[module] description",
// coupling exploit reporting into the general warning stream.
func (d *Dispatcher) LogExploitEvent(url, module, description, cve string, data []byte, forward bool) {
	if forward {
		d.AddBehaviorWarn(fmt.Sprintf("[%s] %s", module, description), cve, "")
	}

	e := ExploitEvent{URL: url, Module: module, Description: description, CVE: cve, Data: data}
	d.broadcast(EventLogExploit, func(b Backend) { b.(ExploitRecorder).LogExploitEvent(e) })
}

// LogWarning writes to the process warning log, then broadcasts.
func (d *Dispatcher) LogWarning(data string) {
	d.log.Warn(data, nil)

	d.broadcast(EventLogWarning, func(b Backend) { b.(WarningRecorder).LogWarning(data) })
}

// LogCertificate records a TLS certificate observed for a URL. The
// certificate block is routed through AddBehaviorWarn first.
func (d *Dispatcher) LogCertificate(url, certificate string) {
	d.AddBehaviorWarn(fmt.Sprintf("[Certificate]\n %s", certificate), "", "")

	d.broadcast(EventLogCertificate, func(b Backend) { b.(CertificateRecorder).LogCertificate(url, certificate) })
}

// LogAnalysisModule persists an external analysis-module report as
// <md5>.<format> under dirname, then broadcasts it to the log_<module>
// handlers.
func (d *Dispatcher) LogAnalysisModule(dirname string, sample *Sample, report []byte, module, format string) error {
	filename := fmt.Sprintf("%s.%s", sample.MD5, format)
	if _, err := d.StoreContent(dirname, filename, report); err != nil {
		return fmt.Errorf("store %s report: %w", module, err)
	}

	d.broadcast(AnalysisEvent(module), func(b Backend) {
		b.(AnalysisReportRecorder).LogAnalysisReport(module, sample.Clone(), report)
	})
	return nil
}

// LogVirusTotal records a VirusTotal report for a sample.
func (d *Dispatcher) LogVirusTotal(dirname string, sample *Sample, report []byte) error {
	return d.LogAnalysisModule(dirname, sample, report, "virustotal", "json")
}

// LogHoneyAgent records a HoneyAgent report for a sample.
func (d *Dispatcher) LogHoneyAgent(dirname string, sample *Sample, report []byte) error {
	return d.LogAnalysisModule(dirname, sample, report, "honeyagent", "json")
}

// LogAndroguard records an Androguard report. The sample's raw payload, if
// any, is re-logged through the file path first.
func (d *Dispatcher) LogAndroguard(dirname string, sample *Sample, report []byte) error {
	raw := sample.Raw
	sample.Raw = nil
	if raw != nil {
		d.logBuiltFile(sample, raw, "", nil)
	}
	return d.LogAnalysisModule(dirname, sample, report, "androguard", "txt")
}

// LogPeepdf records a peepdf report for a sample.
func (d *Dispatcher) LogPeepdf(dirname string, sample *Sample, report []byte) error {
	return d.LogAnalysisModule(dirname, sample, report, "peepdf", "xml")
}
