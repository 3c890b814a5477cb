// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballot registry API server.

The service runs single-organization ballots: an administrator whitelists
voters, voters submit proposals, a one-round first-past-the-post vote is
held, and the winner is tallied. Each ballot is a six-phase state machine
with admin-gated transitions and one-vote-per-voter enforcement.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=ballots.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3000 -d ballots.db --admin-salt ...

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - registry: the ballot state machine (phases, guards, tally, events)
  - handlers: HTTP request handlers (ballots, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin key generation and validation
  - db: Schema creation and registry persistence
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
