package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestGetJSON_AppendsAPIKey(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"symbol":"AAPL","price":150.25}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)

	var dest []map[string]any
	query := url.Values{"symbol": {"AAPL"}}
	if err := client.GetJSON(context.Background(), "/stable/quote", query, &dest); err != nil {
		t.Fatal(err)
	}

	if gotQuery.Get("apikey") != "test-key" {
		t.Errorf("apikey = %q", gotQuery.Get("apikey"))
	}
	if gotQuery.Get("symbol") != "AAPL" {
		t.Errorf("symbol = %q", gotQuery.Get("symbol"))
	}
	if len(dest) != 1 || dest[0]["symbol"] != "AAPL" {
		t.Errorf("decoded %v", dest)
	}
}

func TestGetJSON_DoesNotMutateCallerQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", 5*time.Second)

	query := url.Values{"symbol": {"AAPL"}}
	var dest []map[string]any
	if err := client.GetJSON(context.Background(), "/stable/quote", query, &dest); err != nil {
		t.Fatal(err)
	}

	if _, ok := query["apikey"]; ok {
		t.Error("caller query gained an apikey entry")
	}
	if len(query) != 1 || query.Get("symbol") != "AAPL" {
		t.Errorf("caller query changed: %v", query)
	}
}

func TestGetJSON_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "limit reached", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", 5*time.Second)

	var dest any
	err := client.GetJSON(context.Background(), "/stable/quote", nil, &dest)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
}

func TestGetJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", 5*time.Second)

	var dest []map[string]any
	if err := client.GetJSON(context.Background(), "/x", nil, &dest); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetJSON_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var dest any
	if err := client.GetJSON(ctx, "/slow", nil, &dest); err == nil {
		t.Fatal("expected context deadline error")
	}
}
