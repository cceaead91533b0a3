package eventlog

import "testing"

type formatBackend struct {
	name    string
	formats []string
}

func (b *formatBackend) Name() string      { return b.name }
func (b *formatBackend) Formats() []string { return b.formats }

func TestRegistryFormatsUnion(t *testing.T) {
	reg := NewRegistry("test")
	reg.Register("a", &formatBackend{name: "a", formats: []string{"json", "txt"}})
	reg.Register("b", &formatBackend{name: "b", formats: []string{"json", "xml"}})

	for _, f := range []string{"json", "txt", "xml"} {
		if !reg.Supports(f) {
			t.Errorf("Expected format %q supported", f)
		}
	}
	if reg.Supports("maec11") {
		t.Errorf("Expected undeclared format unsupported")
	}
	if got := len(reg.Formats()); got != 3 {
		t.Errorf("Expected 3 distinct formats, got %d", got)
	}
}

func TestRegistryModulesOrder(t *testing.T) {
	reg := NewRegistry("test")
	reg.Register("z", &formatBackend{name: "z"})
	reg.Register("a", &formatBackend{name: "a"})

	got := reg.Modules()
	if len(got) != 2 || got[0] != "z" || got[1] != "a" {
		t.Errorf("Expected registration order [z a], got %v", got)
	}
}

func TestRegistryDuplicateNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic on duplicate registration")
		}
	}()

	reg := NewRegistry("test")
	reg.Register("dup", &formatBackend{name: "dup"})
	reg.Register("dup", &formatBackend{name: "dup"})
}
