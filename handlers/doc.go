// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP handlers for the ballot API.

# Handlers

Three handler types, each holding the database connection and config:

  - BallotHandler: ballot creation, voter whitelisting, phase transitions
  - VotingHandler: proposal registration and vote casting
  - ResultsHandler: counting, winner and vote count reads, audit log

# Caller Identity

Administrators authenticate with the X-Admin-Key header, an HMAC of the
ballot ID (see the auth package). Voters present their participant
identity in X-Voter-ID; authenticating that identity is the host
platform's concern.

# Transactions

Every mutating handler runs load → apply → persist inside one database
transaction. The registry itself performs all checks before any write,
so an operation either commits completely or changes nothing.

# Error Mapping

Registry failures translate to HTTP statuses in registryError:

	ErrUnauthorized    → 401
	ErrNotRegistered   → 403
	ErrInvalidPhase    → 409
	ErrAlreadyVoted    → 409
	ErrSelfWhitelist   → 400
	ErrInvalidProposal → 400 (404 on result reads)
*/
package handlers
