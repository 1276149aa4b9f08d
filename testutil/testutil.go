// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/huguryildiz/senior-design-jury/auth"
	"github.com/huguryildiz/senior-design-jury/cliparse"
	"github.com/huguryildiz/senior-design-jury/db"
	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/rubric"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own database, so tests stay independent.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate database name: %v", err)
	}
	conn, err := db.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8090,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		DeployKey:    "test-deploy-key",
		AdminSecret:  "test-admin-secret",
		SessionTTL:   time.Hour,
	}
}

// TestRubric returns a small rubric: three groups, three criteria of ten
// points each.
func TestRubric() *rubric.Rubric {
	return &rubric.Rubric{
		Groups: []rubric.Group{
			{ID: "g1", Name: "Team Alpha"},
			{ID: "g2", Name: "Team Beta"},
			{ID: "g3", Name: "Team Gamma"},
		},
		Criteria: []rubric.Criterion{
			{ID: "c1", Label: "Technical Depth", MaxScore: 10},
			{ID: "c2", Label: "Presentation", MaxScore: 10},
			{ID: "c3", Label: "Impact", MaxScore: 10},
		},
	}
}

// Score wraps a literal for ScoreMap construction.
func Score(v float64) *float64 {
	return &v
}

// CreateTestCredential inserts a credential and returns its PIN.
func CreateTestCredential(t *testing.T, conn *sql.DB, identityID, displayName, organization string) string {
	t.Helper()

	pin, err := auth.GeneratePIN()
	if err != nil {
		t.Fatalf("Failed to generate PIN: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO credential (identity_id, display_name, organization, pin, failed_attempts, locked, created_at)
		VALUES ($1, $2, $3, $4, 0, FALSE, $5)
	`, identityID, displayName, organization, pin, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test credential: %v", err)
	}

	return pin
}

// CreateTestSession opens a session for an identity and returns its token.
func CreateTestSession(t *testing.T, conn *sql.DB, identityID string) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}
	now := time.Now()
	_, err = conn.Exec(`
		INSERT INTO session (token, identity_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, token, identityID, now.Add(time.Hour), now)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// AppendTestRecord appends one record to the log and returns its id.
func AppendTestRecord(t *testing.T, conn *sql.DB, rec models.EvaluationRecord) string {
	t.Helper()

	if rec.ID == "" {
		id, err := auth.GenerateID(16)
		if err != nil {
			t.Fatalf("Failed to generate record id: %v", err)
		}
		rec.ID = id
	}
	if err := db.NewRecordLog(conn).Append([]models.EvaluationRecord{rec}); err != nil {
		t.Fatalf("Failed to append test record: %v", err)
	}

	return rec.ID
}

// MakeRequest creates an HTTP test request with the deploy key set.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	req.Header.Set("X-Deploy-Key", GetTestConfig().DeployKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
