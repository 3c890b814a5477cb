// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and view types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateBallotRequest: title, admin_id
  - WhitelistVoterRequest: voter_id
  - RegisterProposalRequest: description
  - CastVoteRequest: proposal_id

# Response Types

Types for JSON responses:

  - CreateBallotResponse: ballot_id, admin_id, admin_key
  - WhitelistVoterResponse: voter_id
  - RegisterProposalResponse: proposal_id
  - CastVoteResponse: proposal_id, message
  - StatusChangeResponse: ballot_id, previous, status
  - CountVotesResponse: winning_proposal_id
  - WinnerResponse: proposal_id, description, vote_count
  - VoteCountResponse: proposal_id, vote_count
  - ErrorResponse: error, message

# Views

  - BallotView: ballot metadata plus roll and proposal counts
  - ProposalView: proposal listing; vote_count omitted until tallied

The registry's own types (registry.Voter, registry.Proposal, events)
live in the registry package; models only shapes the HTTP surface.
*/
package models
