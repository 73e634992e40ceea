package cache

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"career-compass/internal/config"
)

func TestNewRedis_BypassWithoutHost(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, log.New(io.Discard, "", 0))
	if r.Available() {
		t.Fatalf("expected bypassing cache")
	}

	var out map[string]string
	hit, err := r.GetJSON(context.Background(), "recommend:x", &out)
	if hit || err != nil {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := r.SetJSON(context.Background(), "recommend:x", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("expected no-op set, got %v", err)
	}
	if err := r.DeleteByPattern(context.Background(), "recommend:*"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
	if err := r.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error on bypassing cache")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected close err: %v", err)
	}
}

func TestNilRedisIsSafe(t *testing.T) {
	var r *Redis
	if hit, err := r.GetJSON(context.Background(), "k", &struct{}{}); hit || err != nil {
		t.Fatalf("nil cache should miss silently")
	}
}
