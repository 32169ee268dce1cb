package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakeMongo struct{ err error }

func (f fakeMongo) Ping(context.Context, *readpref.ReadPref) error { return f.err }

type fakeRedis struct{ err error }

func (f fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", "")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		mongo    error
		redis    error
		wantCode int
		wantStat string
	}{
		{"all up", nil, nil, http.StatusOK, "ok"},
		{"mongo down", errors.New("no reachable servers"), nil, http.StatusServiceUnavailable, "degraded"},
		{"redis down", nil, errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthDependenciesHandler(fakeMongo{err: tt.mongo}, fakeRedis{err: tt.redis})
			c, rec := newTestContext(http.MethodGet, "/health/ready", "")

			if err := h.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tt.wantStat {
				t.Fatalf("expected status %q, got %q", tt.wantStat, resp.Status)
			}
		})
	}
}

func TestHealthDependenciesHandler_Status(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{nil, "connected"},
		{errors.New("server selection timeout"), "disconnected"},
	} {
		h := NewHealthDependenciesHandler(fakeMongo{err: tc.err}, fakeRedis{})
		c, rec := newTestContext(http.MethodGet, "/", "")

		if err := h.Status(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status probe must always answer 200, got %d", rec.Code)
		}
		var resp statusResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Database != tc.want || resp.Endpoints["register"] == "" {
			t.Fatalf("unexpected status payload: %+v", resp)
		}
	}
}
