package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/redis/go-redis/v9"
)

func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStandingsCacheSurfacesConnectionErrors(t *testing.T) {
	c := NewRedisStandingsCache(unreachableClient(t), time.Minute)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx); err == nil || ok {
		t.Fatalf("Get() = ok %v, err %v; want connection error", ok, err)
	}
	if _, err := c.Generation(ctx); err == nil {
		t.Fatal("Generation() expected connection error")
	}
	if err := c.Set(ctx, 0, []models.Standing{{ID: 1, Name: "Ada"}}); err == nil {
		t.Fatal("Set() expected connection error")
	}
	if err := c.Invalidate(ctx); err == nil {
		t.Fatal("Invalidate() expected connection error")
	}
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0); err == nil {
		t.Fatal("expected ping error")
	}
}
