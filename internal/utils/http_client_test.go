package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("http://localhost:8080", 0)

	if client == nil || client.Client == nil {
		t.Fatal("expected non-nil client with embedded *resty.Client")
	}
}

func TestNewHTTPClient_BaseURLAndTimeout(t *testing.T) {
	client := NewHTTPClient("http://vault.local", 3*time.Second)

	if client.BaseURL != "http://vault.local" {
		t.Errorf("expected base URL to be set, got %q", client.BaseURL)
	}
	if got := client.GetClient().Timeout; got != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", got)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("", 0)
	client2 := NewHTTPClient("", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected independent *resty.Client instances")
	}
}

func TestHTTPClient_JSONDecodesWithoutContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		_, _ = w.Write([]byte(`{"enabled":true}`))
	}))
	defer srv.Close()

	var status struct {
		Enabled bool `json:"enabled"`
	}
	resp, err := NewHTTPClient(srv.URL, time.Second).JSON(context.Background()).SetResult(&status).Get("/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK || !status.Enabled {
		t.Errorf("expected decoded body, got status %d enabled=%v", resp.StatusCode(), status.Enabled)
	}
}
