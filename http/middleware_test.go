package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(origins []string) http.Handler {
	return CORSMiddleware(origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSEchoesAllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://water.example.com")
	w := httptest.NewRecorder()
	corsHandler([]string{"*"}).ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://water.example.com" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestCORSSkipsRequestsWithoutOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	corsHandler([]string{"*"}).ServeHTTP(w, req)

	if _, present := w.Header()["Access-Control-Allow-Origin"]; present {
		t.Fatalf("no Origin header must mean no CORS headers, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	corsHandler([]string{"https://water.example.com"}).ServeHTTP(w, req)

	if _, present := w.Header()["Access-Control-Allow-Origin"]; present {
		t.Fatal("unlisted origin must not receive CORS headers")
	}
}
