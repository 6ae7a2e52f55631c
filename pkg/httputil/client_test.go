package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/boersenspiel/leaderboard/pkg/config"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

func newClient() *Client {
	cfg := &config.Config{
		Boerse: config.BoerseConfig{RequestTimeout: 5 * time.Second},
	}
	return New(cfg, logger.NewNop())
}

func TestGetJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": 42}`))
	}))
	defer srv.Close()

	var dest struct {
		Value int `json:"value"`
	}
	if err := newClient().GetJSON(context.Background(), srv.URL, &dest); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if dest.Value != 42 {
		t.Errorf("value = %d, want 42", dest.Value)
	}
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newClient().WithRetry(2, 10*time.Millisecond)

	var dest map[string]interface{}
	if err := client.GetJSON(context.Background(), srv.URL, &dest); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("server saw %d calls, want 2", calls.Load())
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	err := newClient().GetJSON(context.Background(), srv.URL, &struct{}{})
	if !IsNotFound(err) {
		t.Errorf("err = %v, want a 404 StatusError", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want 1", calls.Load())
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&StatusError{URL: "http://x", StatusCode: 404}) {
		t.Error("404 StatusError should match")
	}
	if IsNotFound(&StatusError{URL: "http://x", StatusCode: 500}) {
		t.Error("500 StatusError should not match")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain error should not match")
	}
}
