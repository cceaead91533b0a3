package backends

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"webhound/pkg/eventlog"
	"webhound/pkg/structlog"
)

// Postgres persists analysis events as JSONB rows. Inserts are best effort:
// a failed write is logged and dropped, never surfaced to the dispatcher.
type Postgres struct {
	db      *sql.DB
	version string
}

// NewPostgres connects to the database and ensures the event table exists.
func NewPostgres(dsn, version string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	p := &Postgres{db: db, version: version}
	if err := p.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return p, nil
}

func (p *Postgres) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS webhound_events (
		id SERIAL PRIMARY KEY,
		engine_version VARCHAR(64) NOT NULL,
		event_type VARCHAR(64) NOT NULL,
		url TEXT,
		payload JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_webhound_events_type ON webhound_events(event_type);
	CREATE INDEX IF NOT EXISTS idx_webhound_events_created_at ON webhound_events(created_at);`

	_, err := p.db.Exec(query)
	return err
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) insert(eventType, url string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		structlog.Error("postgres payload marshal failed", structlog.Fields{"event": eventType, "error": err.Error()})
		return
	}

	_, err = p.db.Exec(
		`INSERT INTO webhound_events (engine_version, event_type, url, payload) VALUES ($1, $2, $3, $4)`,
		p.version, eventType, url, data,
	)
	if err != nil {
		structlog.Error("postgres insert failed", structlog.Fields{"event": eventType, "error": err.Error()})
	}
}

func (p *Postgres) AddBehaviorWarn(w eventlog.BehaviorWarning) {
	p.insert("behavior_warn", "", w)
}

func (p *Postgres) LogConnection(source, destination, method string, flags eventlog.Flags) {
	p.insert("connection", source, map[string]interface{}{
		"destination": destination,
		"method":      method,
		"flags":       flags,
	})
}

func (p *Postgres) LogLocation(url string, loc eventlog.Location, flags eventlog.Flags) {
	p.insert("location", url, map[string]interface{}{
		"md5":    loc.MD5,
		"sha256": loc.SHA256,
		"fsize":  loc.Size,
		"ctype":  loc.ContentType,
		"mtype":  loc.MIMEType,
		"flags":  flags,
	})
}

func (p *Postgres) LogExploitEvent(e eventlog.ExploitEvent) {
	p.insert("exploit", e.URL, map[string]interface{}{
		"module":      e.Module,
		"description": e.Description,
		"cve":         e.CVE,
	})
}

func (p *Postgres) LogWarning(data string) {
	p.insert("warning", "", map[string]interface{}{"data": data})
}

func (p *Postgres) LogCertificate(url, certificate string) {
	p.insert("certificate", url, map[string]interface{}{"certificate": certificate})
}

// Close releases the connection pool.
func (p *Postgres) Close() error { return p.db.Close() }
