// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/barroqt/voting/cliparse"
	"github.com/barroqt/voting/db"
	"github.com/barroqt/voting/middleware"
	"github.com/barroqt/voting/models"
	"github.com/barroqt/voting/registry"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(conn *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: conn, cfg: cfg}
}

// CountVotes handles POST /ballots/{id}/count
// Computes and stores the winner without advancing the phase, so the
// admin may re-run it before tallying. No audit event: the log covers
// registrations, phase changes and votes only.
func (h *ResultsHandler) CountVotes(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	if err := requireAdminKey(r, ballotID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	rg, err := db.LoadRegistry(tx, ballotID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		slog.Error("failed to load registry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	winner, err := rg.CountVotes(rg.Admin)
	if err != nil {
		registryError(w, err)
		return
	}

	if err := db.SaveStatus(tx, ballotID, rg.Status, winner, nil); err != nil {
		slog.Error("failed to save status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to count votes")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to count votes")
		return
	}

	slog.Info("votes counted", "ballot_id", ballotID, "winning_proposal_id", winner)

	middleware.JSONResponse(w, http.StatusOK, models.CountVotesResponse{
		WinningProposalID: winner,
	})
}

// GetWinner handles GET /ballots/{id}/winner
// Only meaningful once the ballot reaches VotesTallied.
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	rg, err := db.LoadRegistry(h.db, ballotID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		slog.Error("failed to load registry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	id, winner, err := rg.WinningProposal()
	if err != nil {
		registryError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		ProposalID:  id,
		Description: winner.Description,
		VoteCount:   winner.VoteCount,
	})
}

// GetProposalVotes handles GET /ballots/{id}/proposals/{proposalID}/votes
func (h *ResultsHandler) GetProposalVotes(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	proposalID, err := strconv.Atoi(r.PathValue("proposalID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id must be an integer")
		return
	}

	rg, err := db.LoadRegistry(h.db, ballotID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		slog.Error("failed to load registry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := rg.ProposalVoteCount(proposalID)
	if errors.Is(err, registry.ErrInvalidProposal) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}
	if err != nil {
		registryError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteCountResponse{
		ProposalID: proposalID,
		VoteCount:  count,
	})
}

// GetEvents handles GET /ballots/{id}/events
// Returns the ballot's append-only audit log in recorded order.
func (h *ResultsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	if _, err := db.GetBallot(h.db, ballotID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	} else if err != nil {
		slog.Error("failed to query ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	events, err := db.ListEvents(h.db, ballotID)
	if err != nil {
		slog.Error("failed to list audit events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, events)
}
