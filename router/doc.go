// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the ballot API.

# Routes

Uses Go 1.22+ method-based routing with path parameters.

Admin operations (X-Admin-Key):

	POST /ballots                       Create a ballot
	POST /ballots/{id}/voters           Whitelist a voter
	POST /ballots/{id}/proposals/start  Open proposal registration
	POST /ballots/{id}/proposals/end    Close proposal registration
	POST /ballots/{id}/voting/start     Open the voting session
	POST /ballots/{id}/voting/end       Close the voting session
	POST /ballots/{id}/count            Compute the winner
	POST /ballots/{id}/tally            Seal the ballot (VotesTallied)

Voter operations (X-Voter-ID):

	POST /ballots/{id}/proposals        Register a proposal
	POST /ballots/{id}/votes            Cast a vote

Public reads:

	GET /ballots/{id}                        Ballot status view
	GET /ballots/{id}/proposals              Proposal list
	GET /ballots/{id}/winner                 Winning proposal (after tally)
	GET /ballots/{id}/proposals/{pid}/votes  Final vote count (after tally)
	GET /ballots/{id}/events                 Audit log
	GET /health                              Health check

All routes except /health and / are wrapped with request logging.
*/
package router
