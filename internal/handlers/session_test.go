package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/pkg/cache/memorycache"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	store, _ := newTestSessionStore(t, nil)
	ctx := context.Background()

	token, err := store.Create(ctx, &Session{UserID: 4, Username: "alice", Role: entities.RoleUser})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	sess, ok := store.Get(ctx, token)
	if !ok {
		t.Fatal("expected session to resolve")
	}
	if sess.UserID != 4 || sess.Username != "alice" {
		t.Errorf("session = %+v", sess)
	}

	if _, ok := store.Get(ctx, "no-such-token"); ok {
		t.Error("unknown token must not resolve")
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, token); ok {
		t.Error("deleted token must not resolve")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	c, err := memorycache.New(&memorycache.Config{
		MaxSizeBytes: 1 << 20,
		DefaultTTL:   time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	store := NewSessionStore(c, time.Millisecond)
	ctx := context.Background()

	token, err := store.Create(ctx, &Session{UserID: 1, Username: "a", Role: entities.RoleUser})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, ok := store.Get(ctx, token); ok {
		t.Error("expired token must not resolve")
	}
}

func TestRequireAuth(t *testing.T) {
	store, token := newTestSessionStore(t, &Session{UserID: 7, Username: "alice", Role: entities.RoleUser})

	var seen *Session
	protected := store.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "valid token", header: "Bearer " + token, wantCode: http.StatusOK},
		{name: "no header", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantCode: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bogus", wantCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}

	if seen == nil || seen.UserID != 7 {
		t.Errorf("handler did not receive the session: %+v", seen)
	}
}
