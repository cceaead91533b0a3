package eventlog

import (
	"fmt"

	"webhound/pkg/structlog"
)

type registeredModule struct {
	name   string
	impl   Backend
	events map[EventName]struct{}
}

// Registry owns the backend module set for one analysis session. Modules are
// registered once at startup, in configuration order, and the set is never
// mutated afterwards.
type Registry struct {
	version string
	modules []registeredModule
	byName  map[string]struct{}
	formats map[string]struct{}
}

// NewRegistry creates an empty registry for the given engine version.
func NewRegistry(version string) *Registry {
	return &Registry{
		version: version,
		byName:  make(map[string]struct{}),
		formats: make(map[string]struct{}),
	}
}

// Version returns the analysis-engine version the registry was built for.
func (r *Registry) Version() string { return r.version }

// Register adds a backend module. The module's capability set is computed
// here, once; registration order is preserved for all later resolutions.
func (r *Registry) Register(name string, b Backend) {
	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("backend module %q already registered", name))
	}
	r.byName[name] = struct{}{}

	events := capabilities(b)
	r.modules = append(r.modules, registeredModule{name: name, impl: b, events: events})

	if fp, ok := b.(FormatProvider); ok {
		for _, f := range fp.Formats() {
			r.formats[f] = struct{}{}
		}
	}

	structlog.Debug("registered backend module", structlog.Fields{
		"module": name,
		"events": len(events),
	})
}

// Modules returns the registered module names in registration order.
func (r *Registry) Modules() []string {
	names := make([]string, len(r.modules))
	for i, m := range r.modules {
		names[i] = m.name
	}
	return names
}

// Supports reports whether any registered module declared the given output
// format.
func (r *Registry) Supports(format string) bool {
	_, ok := r.formats[format]
	return ok
}

// Formats returns the union of all formats the registered modules declare.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.formats))
	for f := range r.formats {
		out = append(out, f)
	}
	return out
}
