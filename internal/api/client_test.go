package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
)

// testClient returns a Client pointed at server without the retrying
// transport, so rejection tests answer immediately.
func testClient(server *httptest.Server) *Client {
	return New(Config{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
}

func TestDo_DecodesSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"tok","user_id":"42","username":"mav"}`))
	}))
	defer server.Close()

	client := testClient(server)
	resp, err := client.Login(context.Background(), LoginRequest{Email: "a@uta.edu", Password: "pw"})
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	if resp.Token != "tok" || resp.UserID != "42" || resp.Username != "mav" {
		t.Errorf("Unexpected login response: %+v", resp)
	}
}

func TestDo_ServerRejection_JSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.Login(context.Background(), LoginRequest{Email: "a@uta.edu", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrServerRejection) {
		t.Fatalf("Expected ErrServerRejection, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid credentials") {
		t.Errorf("Expected the server message in the error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("Expected the status code in the error, got: %v", err)
	}
}

func TestDo_ServerRejection_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("something broke"))
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.Departments(context.Background())
	if !errors.Is(err, apperrors.ErrServerRejection) {
		t.Fatalf("Expected ErrServerRejection, got %v", err)
	}
	if !strings.Contains(err.Error(), "something broke") {
		t.Errorf("Expected the body text in the error, got: %v", err)
	}
}

func TestDo_ServerRejection_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(server)
	_, err := client.Departments(context.Background())
	if !errors.Is(err, apperrors.ErrServerRejection) {
		t.Fatalf("Expected ErrServerRejection, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected the status code in the error, got: %v", err)
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	// A server that is already closed is as unreachable as it gets.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: &http.Client{}})
	_, err := client.Departments(context.Background())
	if !errors.Is(err, apperrors.ErrNetworkFailure) {
		t.Errorf("Expected ErrNetworkFailure, got %v", err)
	}
}

func TestWithToken_SetsBearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := testClient(server).WithToken("secret-token")
	if _, err := client.Departments(context.Background()); err != nil {
		t.Fatalf("Failed to list departments: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
}

func TestNoToken_OmitsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := testClient(server)
	if _, err := client.Departments(context.Background()); err != nil {
		t.Fatalf("Failed to list departments: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Expected no Authorization header, got %q", gotAuth)
	}
}
