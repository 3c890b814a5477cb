// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Portable across SQLite and PostgreSQL: no NOW() defaults, timestamps
// stored as RFC 3339 text set from Go, no JSONB (event payloads are
// JSON text).
const schema = `
-- Ballots
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    admin_id TEXT NOT NULL,
    status INTEGER NOT NULL DEFAULT 0,
    winning_proposal_id INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    tallied_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_ballot_status ON ballot(status);

-- Voter roll, one row per (ballot, participant)
CREATE TABLE IF NOT EXISTS voter (
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    is_registered INTEGER NOT NULL DEFAULT 0,
    has_voted INTEGER NOT NULL DEFAULT 0,
    voted_proposal_id INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (ballot_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_voter_ballot_id ON voter(ballot_id);

-- Proposals, append-only; proposal_id is the in-ballot index
CREATE TABLE IF NOT EXISTS proposal (
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    proposal_id INTEGER NOT NULL,
    description TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (ballot_id, proposal_id)
);

CREATE INDEX IF NOT EXISTS idx_proposal_ballot_id ON proposal(ballot_id);

-- Audit log, append-only
CREATE TABLE IF NOT EXISTS audit_event (
    id TEXT PRIMARY KEY,
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    kind TEXT NOT NULL,
    payload TEXT NOT NULL,
    ip_hash TEXT,
    recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_event_ballot ON audit_event(ballot_id, recorded_at);
`
