package eventlog

import "os"

// Config enumerates the backend module set and the session options. It is
// consumed once at construction; the loaded module set never changes at
// runtime.
type Config struct {
	// Backend enablement flags. Unknown or disabled modules are skipped
	// silently: backends are best-effort conveniences, not a transaction
	// log.
	EnableJSONLog  bool
	EnablePostgres bool
	EnableRedis    bool

	// FileLogging gates StoreContent and the final log-saved notice.
	FileLogging bool
	// OutputDir is where stored content and exports land.
	OutputDir string

	// Backend connection options.
	JSONLogPath string
	PostgresDSN string
	RedisAddr   string
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() Config {
	return Config{
		EnableJSONLog:  getenv("WEBHOUND_BACKEND_JSONLOG", "1") == "1",
		EnablePostgres: getenv("WEBHOUND_BACKEND_POSTGRES", "0") == "1",
		EnableRedis:    getenv("WEBHOUND_BACKEND_REDIS", "0") == "1",
		FileLogging:    getenv("WEBHOUND_FILE_LOGGING", "1") == "1",
		OutputDir:      getenv("WEBHOUND_OUTPUT_DIR", "data/analysis"),
		JSONLogPath:    getenv("WEBHOUND_JSONLOG_PATH", "events.json"),
		PostgresDSN:    getenv("WEBHOUND_POSTGRES_DSN", ""),
		RedisAddr:      getenv("WEBHOUND_REDIS_ADDR", "127.0.0.1:6379"),
	}
}

// getenv returns an environment variable or default value.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
