// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry implements the ballot state machine: voter roll,
proposal list and workflow phase for a single ballot.

# Workflow

Six phases, strictly linear, one step per transition:

	RegisteringVoters
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied

Transitions are admin-only. Each operation checks the caller and the
current phase before writing anything, so a failed call leaves the
registry exactly as it found it.

# Operations

Admin: WhitelistVoter, StartProposals, EndProposals, StartVotingSession,
EndVotingSession, CountVotes, TallyVotes.

Registered voters: RegisterProposal (during proposal registration),
VoteForProposal (during the voting session, once per voter).

Anyone: WinningProposal and ProposalVoteCount, once tallied.

# Events

Successful mutations return an Event (VoterRegistered, StatusChanged,
ProposalRegistered, VoteCast). The registry does not deliver events; the
hosting layer appends them to its audit log.

# Errors

Failures are sentinel errors, matched with errors.Is:

	ErrUnauthorized
	ErrInvalidPhase
	ErrSelfWhitelist
	ErrNotRegistered
	ErrAlreadyVoted
	ErrInvalidProposal

# Concurrency

None. The registry assumes the host serializes calls; in this service
every operation runs inside one database transaction.
*/
package registry
