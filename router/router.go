// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/barroqt/voting/cliparse"
	"github.com/barroqt/voting/handlers"
	"github.com/barroqt/voting/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	ballotHandler := handlers.NewBallotHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Ballot management (admin operations)
	mux.HandleFunc("POST /ballots", middleware.WithLogging(ballotHandler.CreateBallot))
	mux.HandleFunc("POST /ballots/{id}/voters", middleware.WithLogging(ballotHandler.WhitelistVoter))
	mux.HandleFunc("POST /ballots/{id}/proposals/start", middleware.WithLogging(ballotHandler.StartProposals))
	mux.HandleFunc("POST /ballots/{id}/proposals/end", middleware.WithLogging(ballotHandler.EndProposals))
	mux.HandleFunc("POST /ballots/{id}/voting/start", middleware.WithLogging(ballotHandler.StartVoting))
	mux.HandleFunc("POST /ballots/{id}/voting/end", middleware.WithLogging(ballotHandler.EndVoting))
	mux.HandleFunc("POST /ballots/{id}/count", middleware.WithLogging(resultsHandler.CountVotes))
	mux.HandleFunc("POST /ballots/{id}/tally", middleware.WithLogging(ballotHandler.Tally))

	// Voting operations (registered voters)
	mux.HandleFunc("POST /ballots/{id}/proposals", middleware.WithLogging(votingHandler.RegisterProposal))
	mux.HandleFunc("POST /ballots/{id}/votes", middleware.WithLogging(votingHandler.CastVote))

	// Reads (public; results gated by phase)
	mux.HandleFunc("GET /ballots/{id}", middleware.WithLogging(ballotHandler.GetBallot))
	mux.HandleFunc("GET /ballots/{id}/proposals", middleware.WithLogging(votingHandler.ListProposals))
	mux.HandleFunc("GET /ballots/{id}/winner", middleware.WithLogging(resultsHandler.GetWinner))
	mux.HandleFunc("GET /ballots/{id}/proposals/{proposalID}/votes", middleware.WithLogging(resultsHandler.GetProposalVotes))
	mux.HandleFunc("GET /ballots/{id}/events", middleware.WithLogging(resultsHandler.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voting API v1"))
	})

	return mux
}
