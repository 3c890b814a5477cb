// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

// WorkflowStatus is the ballot's lifecycle phase. Phases are strictly
// ordered and only ever advance by one step at a time.
type WorkflowStatus int

const (
	RegisteringVoters WorkflowStatus = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var statusNames = [...]string{
	RegisteringVoters:            "registering_voters",
	ProposalsRegistrationStarted: "proposals_registration_started",
	ProposalsRegistrationEnded:   "proposals_registration_ended",
	VotingSessionStarted:         "voting_session_started",
	VotingSessionEnded:           "voting_session_ended",
	VotesTallied:                 "votes_tallied",
}

func (s WorkflowStatus) String() string {
	if s < RegisteringVoters || s > VotesTallied {
		return "unknown"
	}
	return statusNames[s]
}

// Valid reports whether s is one of the six defined phases. Used when
// rehydrating a registry from storage.
func (s WorkflowStatus) Valid() bool {
	return s >= RegisteringVoters && s <= VotesTallied
}
