package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap/zaptest"

	"bjh.co.th/clinicops/internal/config"
	"bjh.co.th/clinicops/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Addr:        ":0",
		AdminAPIKey: "secret",
		Cache: config.Cache{
			DatabaseTTL:   30 * time.Second,
			SheetsTTL:     20 * time.Second,
			CallStatusTTL: 10 * time.Second,
			SweepGrace:    time.Minute,
		},
	}
}

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := testutil.NewRegexpMockDB(t)
	srv, err := build(context.Background(), testConfig(), db, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return srv, mock
}

func serve(srv *Server, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := serve(srv, http.MethodGet, "/livez", nil); rec.Code != http.StatusOK {
		t.Errorf("livez: expected 200, got %d", rec.Code)
	}
	if rec := serve(srv, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Errorf("readyz: expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := serve(srv, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected runtime metrics in output")
	}
}

func TestAdminRequiresKey(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := serve(srv, http.MethodGet, "/api/admin/schema", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", rec.Code)
	}

	rec := serve(srv, http.MethodGet, "/api/admin/schema", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with key, got %d", rec.Code)
	}
	if rec.Header().Get("X-App-Version") == "" {
		t.Error("expected version header")
	}
}

func TestSheetsRoutesWithoutCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := serve(srv, http.MethodGet, "/api/surgery-schedule", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GOOGLE_SPREADSHEET_ID") {
		t.Errorf("expected missing variables in body, got %s", rec.Body.String())
	}
}

func TestRoutesRegistered(t *testing.T) {
	srv, _ := newTestServer(t)

	want := map[string]bool{
		"GET /api/appointments":                   false,
		"GET /api/crm-advanced":                   false,
		"GET /api/country-options":                false,
		"GET /api/source-options":                 false,
		"POST /api/call-matrix":                   false,
		"GET /api/google-sheets-film-data":        false,
		"GET /api/google-sheets-film-call-status": false,
		"DELETE /api/admin/cache":                 false,
	}
	for _, r := range srv.Echo.Routes() {
		k := r.Method + " " + r.Path
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("route %s not registered", k)
		}
	}
}
