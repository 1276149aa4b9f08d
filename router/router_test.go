// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huguryildiz/senior-design-jury/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return NewRouter(conn, testutil.TestRubric(), testutil.GetTestConfig())
}

func TestHealthCheckSkipsDeployKey(t *testing.T) {
	mux := newTestRouter(t)

	// Plain request, no headers at all
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("health body = %q", w.Body.String())
	}
}

func TestDeployKeyGuardsRoutes(t *testing.T) {
	mux := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/jurors/abc123"},
		{"POST", "/jurors/abc123/pin"},
		{"POST", "/jurors/abc123/verify"},
		{"POST", "/jurors/abc123/reset"},
		{"POST", "/records"},
		{"GET", "/jurors/abc123/records"},
		{"GET", "/jurors/abc123/finalized-count"},
		{"POST", "/jurors/abc123/finalize"},
		{"POST", "/jurors/abc123/reopen"},
		{"GET", "/export"},
		{"GET", "/results"},
		{"GET", "/rubric"},
	}
	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without deploy key: status %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestRoutesReachHandlers(t *testing.T) {
	mux := newTestRouter(t)

	// With the deploy key the request passes the guard and reaches the
	// handler, whose own checks produce the expected domain response.
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/jurors/abc123", http.StatusOK},                      // unknown identity, exists=false
		{"POST", "/jurors/abc123/verify", http.StatusBadRequest},      // no body
		{"POST", "/records", http.StatusUnauthorized},                 // no session token
		{"GET", "/jurors/abc123/records", http.StatusUnauthorized},    // no session token
		{"POST", "/jurors/abc123/reset", http.StatusUnauthorized},     // no admin secret
		{"GET", "/export", http.StatusUnauthorized},                   // no admin secret
		{"GET", "/results", http.StatusUnauthorized},                  // no admin secret
		{"GET", "/rubric", http.StatusOK},
	}
	for _, tt := range tests {
		req := testutil.MakeRequest(tt.method, tt.path, nil, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s %s: status %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}

func TestMethodRouting(t *testing.T) {
	mux := newTestRouter(t)

	// Wrong method on a registered path
	req := testutil.MakeRequest("DELETE", "/records", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /records: status %d, want 405", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := testutil.MakeRequest("GET", "/", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}
