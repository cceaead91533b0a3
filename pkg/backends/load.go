package backends

import (
	"webhound/pkg/eventlog"
	"webhound/pkg/structlog"
)

// LoadRegistry instantiates the enabled backend modules and registers them,
// in enumeration order, into a fresh registry. The variant set is closed and
// compile-time enumerated; disabled names are skipped and a variant whose
// construction fails (bad DSN, unreachable server) is skipped with a logged
// warning rather than failing the session.
func LoadRegistry(cfg eventlog.Config, version string) *eventlog.Registry {
	reg := eventlog.NewRegistry(version)

	variants := []struct {
		name    string
		enabled bool
		build   func() (eventlog.Backend, error)
	}{
		{"jsonlog", cfg.EnableJSONLog, func() (eventlog.Backend, error) {
			return NewJSONLog(version, cfg.JSONLogPath), nil
		}},
		{"postgres", cfg.EnablePostgres, func() (eventlog.Backend, error) {
			p, err := NewPostgres(cfg.PostgresDSN, version)
			if err != nil {
				return nil, err
			}
			return p, nil
		}},
		{"redis", cfg.EnableRedis, func() (eventlog.Backend, error) {
			return NewRedisStream(cfg.RedisAddr, "webhound:events"), nil
		}},
	}

	for _, v := range variants {
		if !v.enabled {
			continue
		}
		b, err := v.build()
		if err != nil {
			structlog.Warn("skipping backend module", structlog.Fields{"module": v.name, "error": err.Error()})
			continue
		}
		reg.Register(v.name, b)
	}

	return reg
}
