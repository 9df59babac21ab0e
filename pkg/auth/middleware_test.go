package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_NoCookie(t *testing.T) {
	secret := SessionSecretBytes("test-secret")
	var called bool
	h := RequireAuth(secret)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler should not have been called")
	}
}

func TestRequireAuth_ValidSession(t *testing.T) {
	secret := SessionSecretBytes("test-secret")
	var gotUserID string
	h := RequireAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: CreateSessionToken("user-1", secret)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if gotUserID != "user-1" {
		t.Errorf("expected user-1 in context, got %q", gotUserID)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	secret := SessionSecretBytes("test-secret")
	var called bool
	h := RequireAuth(secret)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: "garbage.token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler should not have been called")
	}
}

func adminRequest(secret []byte, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))
	return req
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	gate := NewAdminGate("admin@example.com")
	lookup := func(ctx context.Context, userID string) (string, error) {
		return "admin@example.com", nil
	}

	var gotIsAdmin bool
	h := RequireAdmin(gate, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIsAdmin = IsAdminFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, adminRequest(nil, "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotIsAdmin {
		t.Error("expected IsAdmin=true in context")
	}
}

// TestRequireAdmin_NonAdminSignedOut verifies that any authenticated identity
// other than the configured admin is signed out immediately, regardless of
// how the session was established.
func TestRequireAdmin_NonAdminSignedOut(t *testing.T) {
	gate := NewAdminGate("admin@example.com")
	lookup := func(ctx context.Context, userID string) (string, error) {
		return "visitor@example.com", nil
	}

	var called bool
	h := RequireAdmin(gate, lookup)(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, adminRequest(nil, "user-2"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Error("next handler should not have been called")
	}

	// The session cookie must be cleared (forced sign-out).
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName() && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session cookie to be cleared")
	}
}

func TestRequireAdmin_CaseSensitiveMatch(t *testing.T) {
	gate := NewAdminGate("admin@example.com")
	lookup := func(ctx context.Context, userID string) (string, error) {
		return "Admin@Example.com", nil
	}

	var called bool
	h := RequireAdmin(gate, lookup)(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, adminRequest(nil, "user-3"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for case-mismatched email, got %d", rec.Code)
	}
}

func TestRequireAdmin_NoUserInContext(t *testing.T) {
	gate := NewAdminGate("admin@example.com")
	lookup := func(ctx context.Context, userID string) (string, error) {
		t.Fatal("lookup should not be called without a user in context")
		return "", nil
	}

	var called bool
	h := RequireAdmin(gate, lookup)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_LookupFailure(t *testing.T) {
	gate := NewAdminGate("admin@example.com")
	lookup := func(ctx context.Context, userID string) (string, error) {
		return "", errors.New("user not found")
	}

	var called bool
	h := RequireAdmin(gate, lookup)(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, adminRequest(nil, "ghost-user"))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAdminGate_EmptyEmailDeniesEveryone(t *testing.T) {
	gate := NewAdminGate("")
	if gate.IsAdmin("") || gate.IsAdmin("anyone@example.com") {
		t.Error("gate with no configured admin must deny everyone")
	}
}
