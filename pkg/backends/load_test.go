package backends

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webhound/pkg/eventlog"
)

func TestLoadRegistryDisabledModulesExcluded(t *testing.T) {
	cfg := eventlog.Config{EnableJSONLog: true, JSONLogPath: "events.json"}

	reg := LoadRegistry(cfg, "test")
	assert.Equal(t, []string{"jsonlog"}, reg.Modules())

	// A disabled module appears in no resolved sequence.
	r := eventlog.NewResolver(reg)
	for _, b := range r.Resolve(eventlog.EventAddBehaviorWarn) {
		assert.NotEqual(t, "redis", b.Name())
		assert.NotEqual(t, "postgres", b.Name())
	}
}

func TestLoadRegistryAllDisabled(t *testing.T) {
	reg := LoadRegistry(eventlog.Config{}, "test")
	assert.Empty(t, reg.Modules())
}

func TestLoadRegistryMisconfiguredModuleSkipped(t *testing.T) {
	cfg := eventlog.Config{
		EnableJSONLog:  true,
		JSONLogPath:    "events.json",
		EnablePostgres: true,
		// unreachable port: construction fails, module is skipped, the
		// rest of the set still loads
		PostgresDSN: "postgres://webhound@127.0.0.1:1/webhound?sslmode=disable&connect_timeout=1",
	}

	reg := LoadRegistry(cfg, "test")
	assert.Equal(t, []string{"jsonlog"}, reg.Modules())
}

func TestLoadRegistryFormatsUnion(t *testing.T) {
	cfg := eventlog.Config{EnableJSONLog: true, JSONLogPath: "events.json", EnableRedis: true}

	reg := LoadRegistry(cfg, "test")
	assert.True(t, reg.Supports("json"))
	assert.False(t, reg.Supports("xml"))
}

func TestRedisStreamCapabilities(t *testing.T) {
	reg := eventlog.NewRegistry("test")
	reg.Register("redis", NewRedisStream("127.0.0.1:6379", "webhound:events"))

	r := eventlog.NewResolver(reg)
	assert.Len(t, r.Resolve(eventlog.EventAddBehaviorWarn), 1)
	assert.Len(t, r.Resolve(eventlog.EventLogWarning), 1)
	assert.Len(t, r.Resolve(eventlog.EventLogEvent), 1)
	assert.Empty(t, r.Resolve(eventlog.EventLogFile))
}
