package backends

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"webhound/pkg/eventlog"
	"webhound/pkg/structlog"
)

type jsonEntry struct {
	Timestamp string                 `json:"timestamp"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
}

// JSONLog accumulates analysis events in memory and exports them as one
// JSON object per line when the run is finalized.
type JSONLog struct {
	mu       sync.Mutex
	version  string
	filename string
	url      string
	entries  []jsonEntry
}

// NewJSONLog creates the JSON-lines backend. filename is relative to the
// export directory.
func NewJSONLog(version, filename string) *JSONLog {
	return &JSONLog{version: version, filename: filename}
}

func (l *JSONLog) Name() string { return "jsonlog" }

func (l *JSONLog) Formats() []string { return []string{"json"} }

func (l *JSONLog) AnalysisModules() []string {
	return []string{"virustotal", "honeyagent", "androguard", "peepdf"}
}

func (l *JSONLog) record(eventType string, data map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, jsonEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Type:      eventType,
		Data:      data,
	})
}

func (l *JSONLog) SetURL(url string) {
	l.mu.Lock()
	l.url = url
	l.mu.Unlock()
	l.record("set_url", map[string]interface{}{"url": url})
}

func (l *JSONLog) AddBehaviorWarn(w eventlog.BehaviorWarning) {
	l.record("behavior_warn", map[string]interface{}{
		"description": w.Description,
		"cve":         w.CVE,
		"method":      w.Method,
	})
}

func (l *JSONLog) AddCodeSnippet(s eventlog.CodeSnippet) {
	l.record("code_snippet", map[string]interface{}{
		"snippet":      s.Snippet,
		"language":     s.Language,
		"relationship": s.Relationship,
		"method":       s.Method,
	})
}

func (l *JSONLog) LogFile(sample *eventlog.Sample, url string, params map[string]string) {
	l.record("file", map[string]interface{}{
		"url":    url,
		"md5":    sample.MD5,
		"sha256": sample.SHA256,
		"fsize":  sample.Size,
		"ctype":  sample.ContentType,
		"mtype":  sample.MIMEType,
		"format": sample.Type,
		"params": params,
	})
}

func (l *JSONLog) LogConnection(source, destination, method string, flags eventlog.Flags) {
	l.record("connection", map[string]interface{}{
		"source":      source,
		"destination": destination,
		"method":      method,
		"flags":       flags,
	})
}

func (l *JSONLog) LogLocation(url string, loc eventlog.Location, flags eventlog.Flags) {
	l.record("location", map[string]interface{}{
		"url":    url,
		"md5":    loc.MD5,
		"sha256": loc.SHA256,
		"fsize":  loc.Size,
		"ctype":  loc.ContentType,
		"mtype":  loc.MIMEType,
		"flags":  flags,
	})
}

func (l *JSONLog) LogExploitEvent(e eventlog.ExploitEvent) {
	l.record("exploit", map[string]interface{}{
		"url":         e.URL,
		"module":      e.Module,
		"description": e.Description,
		"cve":         e.CVE,
	})
}

func (l *JSONLog) LogWarning(data string) {
	l.record("warning", map[string]interface{}{"data": data})
}

func (l *JSONLog) LogCertificate(url, certificate string) {
	l.record("certificate", map[string]interface{}{
		"url":         url,
		"certificate": certificate,
	})
}

func (l *JSONLog) LogAnalysisReport(module string, sample *eventlog.Sample, report []byte) {
	l.record("analysis_report", map[string]interface{}{
		"module": module,
		"md5":    sample.MD5,
		"report": string(report),
	})
}

// Export writes the accumulated entries to <dir>/<filename>, one JSON object
// per line, preceded by a run header naming the engine version and the URL
// under analysis.
func (l *JSONLog) Export(dir string) {
	l.mu.Lock()
	header := jsonEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Type:      "run",
		Data:      map[string]interface{}{"version": l.version, "url": l.url},
	}
	entries := append([]jsonEntry{header}, l.entries...)
	l.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		structlog.Error("jsonlog export failed", structlog.Fields{"dir": dir, "error": err.Error()})
		return
	}

	fname := filepath.Join(dir, l.filename)
	f, err := os.Create(fname)
	if err != nil {
		structlog.Error("jsonlog export failed", structlog.Fields{"file": fname, "error": err.Error()})
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			structlog.Error("jsonlog encode failed", structlog.Fields{"file": fname, "error": err.Error()})
			return
		}
	}
}

// Entries returns a snapshot of the recorded entry count.
func (l *JSONLog) Entries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
