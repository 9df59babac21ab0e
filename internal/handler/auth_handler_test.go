package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/service"
	"github.com/nexora/backend/pkg/auth"
)

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	signUpFunc        func(ctx context.Context, email, password, name string) (*model.User, error)
	signInFunc        func(ctx context.Context, email, password string) (*model.User, error)
	googleFunc        func(ctx context.Context, info *service.GoogleUserInfo) (*model.User, error)
	githubFunc        func(ctx context.Context, info *service.GitHubUserInfo) (*model.User, error)
	resetRequestFunc  func(ctx context.Context, email string) error
	resetPasswordFunc func(ctx context.Context, token, newPassword string) error
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, name string) (*model.User, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, email, password, name)
	}
	return &model.User{ID: "user-1", Email: email, Name: name}, nil
}

func (m *mockAuthService) SignInWithPassword(ctx context.Context, email, password string) (*model.User, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return &model.User{ID: "user-1", Email: email}, nil
}

func (m *mockAuthService) GetOrCreateUserFromGoogle(ctx context.Context, info *service.GoogleUserInfo) (*model.User, error) {
	if m.googleFunc != nil {
		return m.googleFunc(ctx, info)
	}
	return &model.User{ID: "user-1", Email: info.Email}, nil
}

func (m *mockAuthService) GetOrCreateUserFromGitHub(ctx context.Context, info *service.GitHubUserInfo) (*model.User, error) {
	if m.githubFunc != nil {
		return m.githubFunc(ctx, info)
	}
	return &model.User{ID: "user-1", Email: info.Email}, nil
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.resetRequestFunc != nil {
		return m.resetRequestFunc(ctx, email)
	}
	return nil
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.resetPasswordFunc != nil {
		return m.resetPasswordFunc(ctx, token, newPassword)
	}
	return nil
}

func newTestAuthHandler(svc service.AuthService) *AuthHandler {
	return NewAuthHandler(svc, auth.NewAdminGate("admin@example.com"), AuthConfig{
		SessionSecret: "test-secret",
		FrontendURL:   "http://localhost:3000",
	})
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == "nexora_session" {
			return c
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Signup / Login / Logout
// ---------------------------------------------------------------------------

func TestAuthHandler_Signup_Success(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	body := `{"email":"new@example.com","password":"longenough","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec.Result())
	if cookie == nil || cookie.Value == "" {
		t.Error("expected session cookie to be set")
	}
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{
		signUpFunc: func(ctx context.Context, email, password, name string) (*model.User, error) {
			t.Error("SignUp should not be called for a short password")
			return nil, nil
		},
	})

	body := `{"email":"new@example.com","password":"short","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthHandler_Signup_EmailTaken(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{
		signUpFunc: func(ctx context.Context, email, password, name string) (*model.User, error) {
			return nil, service.ErrEmailTaken
		},
	})

	body := `{"email":"taken@example.com","password":"longenough","name":"X"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{
		signInFunc: func(ctx context.Context, email, password string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: "admin@example.com"}, nil
		},
	})

	body := `{"email":"admin@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Admin bool `json:"admin"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Admin {
		t.Error("expected admin=true for the gate's email")
	}
	if sessionCookie(rec.Result()) == nil {
		t.Error("expected session cookie to be set")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{
		signInFunc: func(ctx context.Context, email, password string) (*model.User, error) {
			return nil, service.ErrInvalidCredentials
		},
	})

	body := `{"email":"x@example.com","password":"wrongpassword"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if sessionCookie(rec.Result()) != nil {
		t.Error("no session cookie should be set on failed login")
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	cookie := sessionCookie(rec.Result())
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Error("expected session cookie to be expired")
	}
}

// ---------------------------------------------------------------------------
// Password reset
// ---------------------------------------------------------------------------

func TestAuthHandler_ResetRequest_AlwaysOK(t *testing.T) {
	// Unknown emails must not be distinguishable from the response.
	h := newTestAuthHandler(&mockAuthService{
		resetRequestFunc: func(ctx context.Context, email string) error {
			return nil
		},
	})

	body := `{"email":"whoever@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-request", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ResetRequest(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuthHandler_Reset_InvalidToken(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{
		resetPasswordFunc: func(ctx context.Context, token, newPassword string) error {
			return service.ErrInvalidResetToken
		},
	})

	body := `{"token":"bogus","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Reset(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthHandler_Reset_Success(t *testing.T) {
	var gotToken, gotPassword string
	h := newTestAuthHandler(&mockAuthService{
		resetPasswordFunc: func(ctx context.Context, token, newPassword string) error {
			gotToken, gotPassword = token, newPassword
			return nil
		},
	})

	body := `{"token":"abc123","password":"newpassword1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Reset(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotToken != "abc123" || gotPassword != "newpassword1" {
		t.Errorf("service called with token=%q password=%q", gotToken, gotPassword)
	}
}

// ---------------------------------------------------------------------------
// OAuth entry points
// ---------------------------------------------------------------------------

func TestAuthHandler_GoogleLoginURL_SetsStateCookie(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil)
	rec := httptest.NewRecorder()

	h.GoogleLoginURL(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.URL, "accounts.google.com") {
		t.Errorf("unexpected auth URL: %s", resp.URL)
	}

	var state *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookieName {
			state = c
		}
	}
	if state == nil || state.Value == "" {
		t.Fatal("expected state cookie to be set")
	}
	if !strings.Contains(resp.URL, "state=") {
		t.Error("auth URL should carry the state parameter")
	}
}

func TestAuthHandler_GoogleCallback_InvalidState(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=forged&code=x", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "real"})
	rec := httptest.NewRecorder()

	h.GoogleCallback(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "error=invalid_state") {
		t.Errorf("redirect = %s, want invalid_state error", loc)
	}
}

func TestAuthHandler_GitHubCallback_MissingCode(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/github/callback?state=s1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "s1"})
	rec := httptest.NewRecorder()

	h.GitHubCallback(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "error=no_code") {
		t.Errorf("redirect = %s, want no_code error", rec.Header().Get("Location"))
	}
}
