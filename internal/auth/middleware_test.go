package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func protected(t *testing.T) (http.Handler, SessionStore) {
	t.Helper()
	store := NewMemoryStore()
	h := Middleware(store, "sd_session", "/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := FromContext(r.Context())
		if !ok {
			t.Fatal("handler ran without session")
		}
		if s.TeamID == 0 {
			t.Fatal("empty team in session")
		}
		w.WriteHeader(http.StatusOK)
	}))
	return h, store
}

func TestMiddlewareRedirectsWithoutCookie(t *testing.T) {
	h, _ := protected(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("location = %q", loc)
	}
}

func TestMiddlewareRedirectsOnUnknownToken(t *testing.T) {
	h, _ := protected(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.AddCookie(&http.Cookie{Name: "sd_session", Value: "bogus"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMiddlewarePassesValidSession(t *testing.T) {
	h, store := protected(t)
	token, err := store.Create(context.Background(), Session{UserID: 1, TeamID: 2}, time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.AddCookie(&http.Cookie{Name: "sd_session", Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
