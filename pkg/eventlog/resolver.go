package eventlog

// Resolver answers "which modules handle event X" with a memoized, stable
// ordering. Because the module set is immutable after startup the cache can
// never become stale; an entry is computed at most once per event name for
// the life of the session.
type Resolver struct {
	registry *Registry
	cache    map[EventName][]Backend
}

// NewResolver creates a resolver over a loaded registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{
		registry: registry,
		cache:    make(map[EventName][]Backend),
	}
}

// Resolve returns the ordered handlers for the given event name. The order
// is module-registration order and is never reordered by call frequency or
// recency.
func (r *Resolver) Resolve(event EventName) []Backend {
	if handlers, ok := r.cache[event]; ok {
		return handlers
	}

	var handlers []Backend
	for _, m := range r.registry.modules {
		if _, ok := m.events[event]; ok {
			handlers = append(handlers, m.impl)
		}
	}

	r.cache[event] = handlers
	return handlers
}
