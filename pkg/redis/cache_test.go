package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableClient is enabled but points at a closed port, so every
// Redis command errors.
func unreachableClient() *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		}),
		enabled: true,
	}
}

func TestGetOrSet_PopulatesDestWhenCacheWriteFails(t *testing.T) {
	cache := NewCache(unreachableClient(), "rooms")

	var dest map[string]int
	err := cache.GetOrSet(context.Background(), "k", &dest, time.Minute, func() (interface{}, error) {
		return map[string]int{"x": 42}, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest["x"] != 42 {
		t.Errorf("expected computed value in dest despite cache write failure, got %v", dest)
	}
}

func TestGetOrSet_Disabled(t *testing.T) {
	cache := NewCache(&Client{enabled: false}, "rooms")

	var dest int
	err := cache.GetOrSet(context.Background(), "k", &dest, time.Minute, func() (interface{}, error) {
		return 7, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest != 7 {
		t.Errorf("expected 7, got %d", dest)
	}
}

func TestCacheKeyBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"analytics", RoomAnalyticsKey("momentum", "2026-01-01", "2026-06-30"), "analytics:momentum:2026-01-01:2026-06-30"},
		{"analytics default range", RoomAnalyticsKey("momentum", "", ""), "analytics:momentum::"},
		{"equity", EquityCurveKey("momentum", "2026-01-01", "2026-06-30"), "equity:momentum:2026-01-01:2026-06-30"},
		{"drawdowns", DrawdownPeriodsKey("momentum", "2026-01-01", "2026-06-30"), "drawdowns:momentum:2026-01-01:2026-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
