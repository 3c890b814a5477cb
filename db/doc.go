// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and registry persistence.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - ballot: Ballot metadata, workflow phase, winning proposal
  - voter: Voter roll, one row per (ballot, participant)
  - proposal: Append-only proposal sequence, indexed per ballot
  - audit_event: Append-only notification log

# Relationships

	ballot 1──* voter
	ballot 1──* proposal
	ballot 1──* audit_event

All foreign keys use ON DELETE CASCADE.

# Registry Round-Trip

Handlers load the full state machine, apply one operation in memory, and
persist only the touched rows, all inside a single transaction:

	tx, _ := conn.Begin()
	defer tx.Rollback()
	rg, err := db.LoadRegistry(tx, ballotID)
	ev, err := rg.VoteForProposal(voter, proposalID)
	db.SaveVoter(tx, ballotID, voter, rg.Voters[voter])
	db.SaveProposal(tx, ballotID, proposalID, rg.Proposals[proposalID])
	db.AppendEvent(tx, ballotID, ev, ipHash, time.Now())
	tx.Commit()

The Querier interface accepts both *sql.DB and *sql.Tx.

# Portability

SQL is kept portable between SQLite and PostgreSQL: $n placeholders,
INSERT ... ON CONFLICT upserts, booleans stored as 0/1 integers, and
timestamps stored as RFC 3339 text in UTC.
*/
package db
