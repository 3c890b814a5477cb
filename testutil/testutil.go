// Copyright (c) 2026 barroqt.
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

	_ "modernc.org/sqlite"

	"github.com/barroqt/voting/auth"
	"github.com/barroqt/voting/cliparse"
	votingdb "github.com/barroqt/voting/db"
	"github.com/barroqt/voting/registry"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own database; it is closed with the test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A second pool connection would see a different empty :memory: DB
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := votingdb.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestBallot creates a ballot advanced to the given phase and
// returns its ID, the admin's participant ID, and the admin key.
func CreateTestBallot(t *testing.T, db *sql.DB, cfg cliparse.Config, status registry.WorkflowStatus) (ballotID, adminID, adminKey string) {
	t.Helper()

	ballotID, _ = auth.GenerateID(16)
	adminID, _ = auth.GenerateID(12)
	adminKey = auth.GenerateAdminKey(ballotID, cfg.AdminKeySalt)

	_, err := db.Exec(`
		INSERT INTO ballot (id, title, admin_id, status, winning_proposal_id, created_at)
		VALUES ($1, 'Test Ballot', $2, $3, 0, $4)
	`, ballotID, adminID, int(status), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballotID, adminID, adminKey
}

// WhitelistTestVoter puts a voter on a ballot's roll directly.
func WhitelistTestVoter(t *testing.T, db *sql.DB, ballotID, voterID string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO voter (ballot_id, voter_id, is_registered, has_voted, voted_proposal_id)
		VALUES ($1, $2, 1, 0, 0)
	`, ballotID, voterID)
	if err != nil {
		t.Fatalf("Failed to whitelist test voter: %v", err)
	}
}

// AddTestProposal appends a proposal row and returns its assigned ID.
func AddTestProposal(t *testing.T, db *sql.DB, ballotID, description string, voteCount int) int {
	t.Helper()

	var next int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM proposal WHERE ballot_id = $1
	`, ballotID).Scan(&next)
	if err != nil {
		t.Fatalf("Failed to count proposals: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO proposal (ballot_id, proposal_id, description, vote_count)
		VALUES ($1, $2, $3, $4)
	`, ballotID, next, description, voteCount)
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}

	return next
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

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
