// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = errors.New("caller is not the administrator")
	ErrInvalidPhase    = errors.New("operation not allowed in current phase")
	ErrSelfWhitelist   = errors.New("administrator cannot whitelist itself")
	ErrNotRegistered   = errors.New("caller is not a registered voter")
	ErrAlreadyVoted    = errors.New("voter has already voted")
	ErrInvalidProposal = errors.New("proposal id out of range")
)

// Voter is one participant's record. Records are created zero-valued on
// first reference and never deleted.
type Voter struct {
	IsRegistered    bool `json:"is_registered"`
	HasVoted        bool `json:"has_voted"`
	VotedProposalID int  `json:"voted_proposal_id"`
}

// Proposal lives in an append-only sequence; its index is its ID and is
// never reassigned.
type Proposal struct {
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

// Registry is one ballot's full state: voter roll, proposal list and
// workflow phase. All mutation goes through its methods, each of which
// performs every check before any write, so a failed call leaves the
// registry untouched.
//
// The registry does no locking. The hosting layer serializes calls (in
// this service, one database transaction per operation).
type Registry struct {
	Admin             string
	Status            WorkflowStatus
	Voters            map[string]Voter
	Proposals         []Proposal
	WinningProposalID int
}

// New creates a registry in the RegisteringVoters phase owned by admin.
func New(admin string) *Registry {
	return &Registry{
		Admin:  admin,
		Voters: make(map[string]Voter),
	}
}

// predecessors[target] is the only phase a transition into target may
// leave from. RegisteringVoters is initial and never a target.
var predecessors = [...]WorkflowStatus{
	ProposalsRegistrationStarted: RegisteringVoters,
	ProposalsRegistrationEnded:   ProposalsRegistrationStarted,
	VotingSessionStarted:         ProposalsRegistrationEnded,
	VotingSessionEnded:           VotingSessionStarted,
	VotesTallied:                 VotingSessionEnded,
}

func (rg *Registry) requireAdmin(caller string) error {
	if caller != rg.Admin {
		return ErrUnauthorized
	}
	return nil
}

func (rg *Registry) requirePhase(want WorkflowStatus) error {
	if rg.Status != want {
		return fmt.Errorf("%w: ballot is in %s, requires %s", ErrInvalidPhase, rg.Status, want)
	}
	return nil
}

func (rg *Registry) requireRegistered(caller string) error {
	if !rg.Voters[caller].IsRegistered {
		return ErrNotRegistered
	}
	return nil
}

// advance moves the workflow into `to`, checking the caller and the
// required predecessor phase first.
func (rg *Registry) advance(caller string, to WorkflowStatus) (Event, error) {
	if err := rg.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := rg.requirePhase(predecessors[to]); err != nil {
		return nil, err
	}
	prev := rg.Status
	rg.Status = to
	return StatusChanged{Previous: prev, New: to}, nil
}

// WhitelistVoter registers voterID on the voter roll. Admin only, during
// RegisteringVoters. Re-whitelisting an already-registered voter is a
// no-op beyond re-emitting the event; it never clears voting history.
func (rg *Registry) WhitelistVoter(caller, voterID string) (Event, error) {
	if err := rg.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := rg.requirePhase(RegisteringVoters); err != nil {
		return nil, err
	}
	if voterID == rg.Admin {
		return nil, ErrSelfWhitelist
	}
	v := rg.Voters[voterID]
	v.IsRegistered = true
	rg.Voters[voterID] = v
	return VoterRegistered{VoterID: voterID}, nil
}

// StartProposals opens proposal registration.
func (rg *Registry) StartProposals(caller string) (Event, error) {
	return rg.advance(caller, ProposalsRegistrationStarted)
}

// EndProposals closes proposal registration.
func (rg *Registry) EndProposals(caller string) (Event, error) {
	return rg.advance(caller, ProposalsRegistrationEnded)
}

// StartVotingSession opens the voting session.
func (rg *Registry) StartVotingSession(caller string) (Event, error) {
	return rg.advance(caller, VotingSessionStarted)
}

// EndVotingSession closes the voting session.
func (rg *Registry) EndVotingSession(caller string) (Event, error) {
	return rg.advance(caller, VotingSessionEnded)
}

// RegisterProposal appends a proposal for a registered voter and returns
// its assigned ID. IDs are 0-based, monotonic and never reused.
func (rg *Registry) RegisterProposal(caller, description string) (int, Event, error) {
	if err := rg.requirePhase(ProposalsRegistrationStarted); err != nil {
		return 0, nil, err
	}
	if err := rg.requireRegistered(caller); err != nil {
		return 0, nil, err
	}
	id := len(rg.Proposals)
	rg.Proposals = append(rg.Proposals, Proposal{Description: description})
	return id, ProposalRegistered{ProposalID: id}, nil
}

// VoteForProposal casts the caller's single vote for proposalID.
func (rg *Registry) VoteForProposal(caller string, proposalID int) (Event, error) {
	if err := rg.requirePhase(VotingSessionStarted); err != nil {
		return nil, err
	}
	if err := rg.requireRegistered(caller); err != nil {
		return nil, err
	}
	v := rg.Voters[caller]
	if v.HasVoted {
		return nil, ErrAlreadyVoted
	}
	if proposalID < 0 || proposalID >= len(rg.Proposals) {
		return nil, ErrInvalidProposal
	}
	rg.Proposals[proposalID].VoteCount++
	v.HasVoted = true
	v.VotedProposalID = proposalID
	rg.Voters[caller] = v
	return VoteCast{VoterID: caller, ProposalID: proposalID}, nil
}

// CountVotes scans the proposals in index order and records the winner.
// Admin only, during VotingSessionEnded; it does not advance the phase,
// so it may be re-run before tallying. The first proposal to reach the
// maximum wins: a later proposal with merely equal votes never displaces
// an earlier one, and proposal 0 wins by default when every vote count
// is zero.
func (rg *Registry) CountVotes(caller string) (int, error) {
	if err := rg.requireAdmin(caller); err != nil {
		return 0, err
	}
	if err := rg.requirePhase(VotingSessionEnded); err != nil {
		return 0, err
	}
	rg.countVotes()
	return rg.WinningProposalID, nil
}

func (rg *Registry) countVotes() {
	best := 0
	winning := 0
	for i, p := range rg.Proposals {
		if p.VoteCount > best {
			best = p.VoteCount
			winning = i
		}
	}
	rg.WinningProposalID = winning
}

// TallyVotes recounts and moves the workflow to its terminal
// VotesTallied phase. Counting here makes the transition sufficient on
// its own; a prior CountVotes call is allowed but not required.
func (rg *Registry) TallyVotes(caller string) (Event, error) {
	if err := rg.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := rg.requirePhase(VotingSessionEnded); err != nil {
		return nil, err
	}
	rg.countVotes()
	return rg.advance(caller, VotesTallied)
}

// WinningProposal returns the winning proposal's ID and contents.
// Only meaningful once the votes are tallied.
func (rg *Registry) WinningProposal() (int, Proposal, error) {
	if err := rg.requirePhase(VotesTallied); err != nil {
		return 0, Proposal{}, err
	}
	if rg.WinningProposalID < 0 || rg.WinningProposalID >= len(rg.Proposals) {
		// A ballot tallied with zero proposals has no winner to return.
		return 0, Proposal{}, ErrInvalidProposal
	}
	return rg.WinningProposalID, rg.Proposals[rg.WinningProposalID], nil
}

// ProposalVoteCount returns the final vote count for proposalID.
func (rg *Registry) ProposalVoteCount(proposalID int) (int, error) {
	if err := rg.requirePhase(VotesTallied); err != nil {
		return 0, err
	}
	if proposalID < 0 || proposalID >= len(rg.Proposals) {
		return 0, ErrInvalidProposal
	}
	return rg.Proposals[proposalID].VoteCount, nil
}
