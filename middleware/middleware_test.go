// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/huguryildiz/senior-design-jury/models"
)

func TestWithDeployKey(t *testing.T) {
	called := false
	handler := WithDeployKey("secret-key", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	// Missing key
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/jurors/abc", nil))
	if w.Code != http.StatusUnauthorized || called {
		t.Errorf("missing key: code=%d called=%v", w.Code, called)
	}

	// Wrong key
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/jurors/abc", nil)
	req.Header.Set(DeployKeyHeader, "wrong")
	handler(w, req)
	if w.Code != http.StatusUnauthorized || called {
		t.Errorf("wrong key: code=%d called=%v", w.Code, called)
	}

	// Correct key
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/jurors/abc", nil)
	req.Header.Set(DeployKeyHeader, "secret-key")
	handler(w, req)
	if w.Code != http.StatusOK || !called {
		t.Errorf("correct key: code=%d called=%v", w.Code, called)
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("code = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusConflict, "already issued")

	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != http.StatusText(http.StatusConflict) || body.Message != "already issued" {
		t.Errorf("body = %+v", body)
	}
}

func TestParseJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"pin":"0042"}`))
	var v models.VerifyPinRequest
	if err := ParseJSONBody(req, &v); err != nil {
		t.Fatalf("ParseJSONBody: %v", err)
	}
	if v.Pin != "0042" {
		t.Errorf("pin = %q", v.Pin)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))
	if err := ParseJSONBody(req, &v); err == nil {
		t.Error("malformed body accepted")
	}
}

func TestCORSPreflight(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the inner handler")
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/records", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	CORS(inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("preflight code = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin = %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "X-Session-Token") {
		t.Error("session token header not allowed by CORS")
	}
}
