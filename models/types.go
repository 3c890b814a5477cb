// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreateBallotRequest struct {
	Title   string `json:"title"`
	AdminID string `json:"admin_id"`
}

type WhitelistVoterRequest struct {
	VoterID string `json:"voter_id"`
}

type RegisterProposalRequest struct {
	Description string `json:"description"`
}

type CastVoteRequest struct {
	ProposalID int `json:"proposal_id"`
}

// Response types

type CreateBallotResponse struct {
	BallotID string `json:"ballot_id"`
	AdminID  string `json:"admin_id"`
	AdminKey string `json:"admin_key"`
}

type WhitelistVoterResponse struct {
	VoterID string `json:"voter_id"`
}

type RegisterProposalResponse struct {
	ProposalID int `json:"proposal_id"`
}

type CastVoteResponse struct {
	ProposalID int    `json:"proposal_id"`
	Message    string `json:"message"`
}

// StatusChangeResponse reports a completed phase transition.
type StatusChangeResponse struct {
	BallotID string `json:"ballot_id"`
	Previous string `json:"previous"`
	Status   string `json:"status"`
}

type CountVotesResponse struct {
	WinningProposalID int `json:"winning_proposal_id"`
}

type WinnerResponse struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

type VoteCountResponse struct {
	ProposalID int `json:"proposal_id"`
	VoteCount  int `json:"vote_count"`
}

// Domain views

type BallotView struct {
	BallotID      string     `json:"ballot_id"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	VoterCount    int        `json:"voter_count"`
	ProposalCount int        `json:"proposal_count"`
	CreatedAt     time.Time  `json:"created_at"`
	TalliedAt     *time.Time `json:"tallied_at,omitempty"`
}

// ProposalView hides vote counts until the ballot is tallied.
type ProposalView struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   *int   `json:"vote_count,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
