package resend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSend_NotConfigured(t *testing.T) {
	c := NewClient("")
	err := c.Send(context.Background(), Email{To: "admin@example.com"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSend_Success(t *testing.T) {
	var gotAuth string
	var gotEmail Email
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/emails" {
			t.Errorf("expected path /emails, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotEmail); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email-id"}`))
	}))
	defer srv.Close()

	c := NewClient("re_test_key")
	c.BaseURL = srv.URL

	email := Email{
		From:    "noreply@example.com",
		To:      "admin@example.com",
		Subject: "New Contact: Hello",
		HTML:    "<p>Hi</p>",
	}
	if err := c.Send(context.Background(), email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer re_test_key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotEmail != email {
		t.Errorf("expected %+v, got %+v", email, gotEmail)
	}
}

func TestSend_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer srv.Close()

	c := NewClient("re_test_key")
	c.BaseURL = srv.URL

	err := c.Send(context.Background(), Email{To: "bad"})
	if err == nil {
		t.Fatal("expected error for non-2xx response, got nil")
	}
}

func TestSend_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient("re_test_key")
	c.BaseURL = srv.URL

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := c.Send(ctx, Email{To: "admin@example.com"}); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}
