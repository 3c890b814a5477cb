// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/barroqt/voting/registry"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Handlers run every mutating operation through a transaction so a
// registry round-trip commits atomically or not at all.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Ballot is the stored metadata for one hosted ballot.
type Ballot struct {
	ID                string
	Title             string
	AdminID           string
	Status            registry.WorkflowStatus
	WinningProposalID int
	CreatedAt         time.Time
	TalliedAt         *time.Time
}

// timeFmt is how timestamps are stored; RFC 3339 text round-trips
// identically through SQLite and PostgreSQL TEXT columns. The fractional
// second is fixed-width so lexicographic ORDER BY matches chronological
// order.
const timeFmt = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeFmt)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CreateBallot inserts a new ballot row in the RegisteringVoters phase.
func CreateBallot(q Querier, id, title, adminID string, now time.Time) error {
	_, err := q.Exec(`
		INSERT INTO ballot (id, title, admin_id, status, winning_proposal_id, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`, id, title, adminID, int(registry.RegisteringVoters), encodeTime(now))
	if err != nil {
		return fmt.Errorf("failed to insert ballot: %w", err)
	}
	return nil
}

// GetBallot loads one ballot's metadata. Returns sql.ErrNoRows when the
// ballot does not exist.
func GetBallot(q Querier, id string) (Ballot, error) {
	var (
		b         Ballot
		status    int
		createdAt string
		talliedAt sql.NullString
	)
	err := q.QueryRow(`
		SELECT id, title, admin_id, status, winning_proposal_id, created_at, tallied_at
		FROM ballot
		WHERE id = $1
	`, id).Scan(&b.ID, &b.Title, &b.AdminID, &status, &b.WinningProposalID, &createdAt, &talliedAt)
	if err != nil {
		return Ballot{}, err
	}

	b.Status = registry.WorkflowStatus(status)
	if !b.Status.Valid() {
		return Ballot{}, fmt.Errorf("ballot %s has invalid status %d", id, status)
	}
	if b.CreatedAt, err = decodeTime(createdAt); err != nil {
		return Ballot{}, fmt.Errorf("failed to parse ballot created_at: %w", err)
	}
	if talliedAt.Valid {
		t, err := decodeTime(talliedAt.String)
		if err != nil {
			return Ballot{}, fmt.Errorf("failed to parse ballot tallied_at: %w", err)
		}
		b.TalliedAt = &t
	}
	return b, nil
}

// LoadRegistry rehydrates the full registry for a ballot: metadata row,
// voter roll and proposal sequence. Returns sql.ErrNoRows when the
// ballot does not exist.
func LoadRegistry(q Querier, ballotID string) (*registry.Registry, error) {
	b, err := GetBallot(q, ballotID)
	if err != nil {
		return nil, err
	}

	rg := registry.New(b.AdminID)
	rg.Status = b.Status
	rg.WinningProposalID = b.WinningProposalID

	rows, err := q.Query(`
		SELECT voter_id, is_registered, has_voted, voted_proposal_id
		FROM voter
		WHERE ballot_id = $1
	`, ballotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			voterID         string
			isReg, hasVoted int
			votedProposalID int
		)
		if err := rows.Scan(&voterID, &isReg, &hasVoted, &votedProposalID); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		rg.Voters[voterID] = registry.Voter{
			IsRegistered:    isReg != 0,
			HasVoted:        hasVoted != 0,
			VotedProposalID: votedProposalID,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voters: %w", err)
	}

	prows, err := q.Query(`
		SELECT description, vote_count
		FROM proposal
		WHERE ballot_id = $1
		ORDER BY proposal_id
	`, ballotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var p registry.Proposal
		if err := prows.Scan(&p.Description, &p.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		rg.Proposals = append(rg.Proposals, p)
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read proposals: %w", err)
	}

	return rg, nil
}

// SaveVoter upserts one voter's record for a ballot.
func SaveVoter(q Querier, ballotID, voterID string, v registry.Voter) error {
	_, err := q.Exec(`
		INSERT INTO voter (ballot_id, voter_id, is_registered, has_voted, voted_proposal_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ballot_id, voter_id) DO UPDATE SET
			is_registered = $3,
			has_voted = $4,
			voted_proposal_id = $5
	`, ballotID, voterID, boolToInt(v.IsRegistered), boolToInt(v.HasVoted), v.VotedProposalID)
	if err != nil {
		return fmt.Errorf("failed to save voter: %w", err)
	}
	return nil
}

// SaveProposal upserts one proposal row. proposalID is the in-ballot
// index assigned by the registry.
func SaveProposal(q Querier, ballotID string, proposalID int, p registry.Proposal) error {
	_, err := q.Exec(`
		INSERT INTO proposal (ballot_id, proposal_id, description, vote_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ballot_id, proposal_id) DO UPDATE SET
			description = $3,
			vote_count = $4
	`, ballotID, proposalID, p.Description, p.VoteCount)
	if err != nil {
		return fmt.Errorf("failed to save proposal: %w", err)
	}
	return nil
}

// SaveStatus writes the ballot's workflow phase and winning proposal.
// talliedAt is recorded once, by the tally transition.
func SaveStatus(q Querier, ballotID string, status registry.WorkflowStatus, winningProposalID int, talliedAt *time.Time) error {
	var tallied any
	if talliedAt != nil {
		tallied = encodeTime(*talliedAt)
	}
	_, err := q.Exec(`
		UPDATE ballot
		SET status = $1, winning_proposal_id = $2, tallied_at = COALESCE($3, tallied_at)
		WHERE id = $4
	`, int(status), winningProposalID, tallied, ballotID)
	if err != nil {
		return fmt.Errorf("failed to save ballot status: %w", err)
	}
	return nil
}
