package backends

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"webhound/pkg/eventlog"
	"webhound/pkg/structlog"
)

// RedisStream publishes analysis events onto a redis stream so downstream
// consumers (dashboards, correlators) can follow a run live. Publishing is
// best effort.
type RedisStream struct {
	rdb    *redis.Client
	stream string
}

// NewRedisStream creates the redis backend. It does not dial eagerly; a dead
// server only costs dropped events.
func NewRedisStream(addr, stream string) *RedisStream {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStream{rdb: rdb, stream: stream}
}

func (r *RedisStream) Name() string { return "redis" }

func (r *RedisStream) publish(eventType string, values map[string]interface{}) {
	values["event"] = eventType

	err := r.rdb.XAdd(context.Background(), &redis.XAddArgs{
		Stream: r.stream,
		Values: values,
	}).Err()
	if err != nil {
		structlog.Error("redis publish failed", structlog.Fields{"event": eventType, "error": err.Error()})
	}
}

func (r *RedisStream) SetURL(url string) {
	r.publish("set_url", map[string]interface{}{"url": url})
}

func (r *RedisStream) AddBehaviorWarn(w eventlog.BehaviorWarning) {
	r.publish("behavior_warn", map[string]interface{}{
		"description": w.Description,
		"cve":         w.CVE,
		"method":      w.Method,
	})
}

func (r *RedisStream) LogWarning(data string) {
	r.publish("warning", map[string]interface{}{"data": data})
}

func (r *RedisStream) LogEvent(dir string) {
	r.publish("run_finalized", map[string]interface{}{"dir": dir})
}

// Close releases the client.
func (r *RedisStream) Close() error { return r.rdb.Close() }
