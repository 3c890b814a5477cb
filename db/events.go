// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barroqt/voting/registry"
)

// AuditEvent is one stored notification from the append-only audit log.
// Payload is the event's JSON body, kept raw so callers can return it
// verbatim.
type AuditEvent struct {
	ID         string          `json:"id"`
	BallotID   string          `json:"ballot_id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// AppendEvent records a registry event in the audit log. ipHash may be
// empty when the caller's address is unknown (internal operations).
func AppendEvent(q Querier, ballotID string, ev registry.Event, ipHash string, now time.Time) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	var hash any
	if ipHash != "" {
		hash = ipHash
	}

	_, err = q.Exec(`
		INSERT INTO audit_event (id, ballot_id, kind, payload, ip_hash, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), ballotID, ev.Kind(), string(payload), hash, encodeTime(now))
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// ListEvents returns a ballot's audit log in recorded order.
func ListEvents(q Querier, ballotID string) ([]AuditEvent, error) {
	rows, err := q.Query(`
		SELECT id, ballot_id, kind, payload, recorded_at
		FROM audit_event
		WHERE ballot_id = $1
		ORDER BY recorded_at, id
	`, ballotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	events := []AuditEvent{}
	for rows.Next() {
		var (
			ev         AuditEvent
			payload    string
			recordedAt string
		)
		if err := rows.Scan(&ev.ID, &ev.BallotID, &ev.Kind, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		ev.Payload = json.RawMessage(payload)
		if ev.RecordedAt, err = decodeTime(recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse event recorded_at: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit events: %w", err)
	}
	return events, nil
}
