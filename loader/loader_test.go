package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoadCachesScriptBody(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			fetches++
			w.Write([]byte("window.amznads = {};"))
		}),
	)
	defer server.Close()

	ldr := NewHTTPScriptLoader(server.Client(), "http://localhost/bid")

	client, err := ldr.Load(context.TODO(), server.URL+"/amzn_ads.js")
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if client == nil {
		t.Fatal("expected a bound ad client")
	}

	if _, err := ldr.Load(context.TODO(), server.URL+"/amzn_ads.js"); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if fetches != 1 {
		t.Errorf("expected 1 upstream fetch, got %d", fetches)
	}
}

func TestLoadFailure(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(404)
		}),
	)
	defer server.Close()

	ldr := NewHTTPScriptLoader(server.Client(), "http://localhost/bid")
	if _, err := ldr.Load(context.TODO(), server.URL+"/missing.js"); err == nil {
		t.Fatal("expected error on HTTP 404")
	}
}
