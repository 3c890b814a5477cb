// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

// Event is a notification produced by a successful state-changing
// operation. The registry never delivers events itself; the caller hands
// them to whatever audit sink hosts the registry.
type Event interface {
	// Kind is a stable machine-readable name for the event type.
	Kind() string
}

// Event kind constants, also used as audit log discriminators.
const (
	KindVoterRegistered    = "voter_registered"
	KindStatusChanged      = "status_changed"
	KindProposalRegistered = "proposal_registered"
	KindVoteCast           = "vote_cast"
)

type VoterRegistered struct {
	VoterID string `json:"voter_id"`
}

func (VoterRegistered) Kind() string { return KindVoterRegistered }

type StatusChanged struct {
	Previous WorkflowStatus `json:"previous"`
	New      WorkflowStatus `json:"new"`
}

func (StatusChanged) Kind() string { return KindStatusChanged }

type ProposalRegistered struct {
	ProposalID int `json:"proposal_id"`
}

func (ProposalRegistered) Kind() string { return KindProposalRegistered }

type VoteCast struct {
	VoterID    string `json:"voter_id"`
	ProposalID int    `json:"proposal_id"`
}

func (VoteCast) Kind() string { return KindVoteCast }
