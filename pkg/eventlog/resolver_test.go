package eventlog

import "testing"

// urlOnlyBackend implements just one capability.
type urlOnlyBackend struct {
	name string
	urls []string
}

func (b *urlOnlyBackend) Name() string { return b.name }
func (b *urlOnlyBackend) SetURL(url string) { b.urls = append(b.urls, url) }

func TestResolveRegistrationOrder(t *testing.T) {
	first := &urlOnlyBackend{name: "first"}
	second := &recorderBackend{name: "second"}
	third := &urlOnlyBackend{name: "third"}

	reg := NewRegistry("test")
	reg.Register("first", first)
	reg.Register("second", second)
	reg.Register("third", third)

	handlers := NewResolver(reg).Resolve(EventSetURL)
	if len(handlers) != 3 {
		t.Fatalf("Expected 3 handlers, got %d", len(handlers))
	}
	for i, want := range []string{"first", "second", "third"} {
		if handlers[i].Name() != want {
			t.Errorf("Handler %d: expected %s, got %s", i, want, handlers[i].Name())
		}
	}
}

func TestResolveCapabilityFiltering(t *testing.T) {
	reg := NewRegistry("test")
	reg.Register("urls", &urlOnlyBackend{name: "urls"})
	reg.Register("full", &recorderBackend{name: "full"})

	r := NewResolver(reg)

	if got := r.Resolve(EventAddBehaviorWarn); len(got) != 1 || got[0].Name() != "full" {
		t.Errorf("Expected only the full backend for add_behavior_warn, got %v", got)
	}
	if got := r.Resolve(EventName("no_such_event")); len(got) != 0 {
		t.Errorf("Expected no handlers for unknown event, got %d", len(got))
	}
}

func TestResolveMemoization(t *testing.T) {
	reg := NewRegistry("test")
	reg.Register("rec", &recorderBackend{name: "rec"})

	r := NewResolver(reg)
	first := r.Resolve(EventLogWarning)
	if len(first) != 1 {
		t.Fatalf("Expected 1 handler, got %d", len(first))
	}

	// Dropping the registry's module list must not change later
	// resolutions: the entry was memoized on first use.
	reg.modules = nil

	second := r.Resolve(EventLogWarning)
	if len(second) != 1 || second[0].Name() != "rec" {
		t.Errorf("Expected memoized handler list, got %v", second)
	}
}

func TestResolveAnalysisModuleNames(t *testing.T) {
	reg := NewRegistry("test")
	reg.Register("rec", &recorderBackend{name: "rec"}) // declares virustotal, androguard

	r := NewResolver(reg)
	if got := r.Resolve(AnalysisEvent("virustotal")); len(got) != 1 {
		t.Errorf("Expected handler for log_virustotal, got %d", len(got))
	}
	if got := r.Resolve(AnalysisEvent("peepdf")); len(got) != 0 {
		t.Errorf("Expected no handler for undeclared log_peepdf, got %d", len(got))
	}
}
