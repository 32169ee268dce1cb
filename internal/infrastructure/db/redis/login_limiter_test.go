package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestLoginLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewLoginLimiter(client, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		blocked, err := limiter.Blocked(ctx, "uid:AAAA1111BBBB2222")
		if err != nil {
			t.Fatalf("Blocked: %v", err)
		}
		if blocked {
			t.Fatalf("blocked too early after %d failures", i)
		}
		if err := limiter.RecordFailure(ctx, "uid:AAAA1111BBBB2222"); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}

	blocked, err := limiter.Blocked(ctx, "uid:AAAA1111BBBB2222")
	if err != nil {
		t.Fatalf("Blocked: %v", err)
	}
	if !blocked {
		t.Fatal("expected key to be blocked")
	}

	other, _ := limiter.Blocked(ctx, "uid:CCCC3333DDDD4444")
	if other {
		t.Fatal("unrelated key must not be blocked")
	}
}

func TestLoginLimiter_ExpiresAfterLockout(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewLoginLimiter(client, 1, time.Minute)
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx, "user:doctor:drsmith"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if ttl := mr.TTL("login:attempts:user:doctor:drsmith"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)

	blocked, err := limiter.Blocked(ctx, "user:doctor:drsmith")
	if err != nil {
		t.Fatalf("Blocked: %v", err)
	}
	if blocked {
		t.Fatal("counter should have expired")
	}
}

func TestLoginLimiter_Reset(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewLoginLimiter(client, 1, time.Minute)
	ctx := context.Background()

	_ = limiter.RecordFailure(ctx, "uid:AAAA1111BBBB2222")
	if err := limiter.Reset(ctx, "uid:AAAA1111BBBB2222"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if mr.Exists("login:attempts:uid:AAAA1111BBBB2222") {
		t.Fatal("expected key to be deleted")
	}
}

func TestLoginLimiter_Defaults(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewLoginLimiter(client, 0, 0)

	if limiter.maxAttempts != defaultMaxAttempts || limiter.lockout != defaultLockout {
		t.Fatalf("unexpected defaults: %d %v", limiter.maxAttempts, limiter.lockout)
	}
}

func TestLoginLimiter_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	limiter := NewLoginLimiter(client, 1, time.Minute)
	mr.Close()

	if _, err := limiter.Blocked(context.Background(), "uid:AAAA1111BBBB2222"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
