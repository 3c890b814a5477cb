// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/barroqt/voting/auth"
	"github.com/barroqt/voting/cliparse"
	"github.com/barroqt/voting/db"
	"github.com/barroqt/voting/middleware"
	"github.com/barroqt/voting/models"
	"github.com/barroqt/voting/registry"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(conn *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: conn, cfg: cfg}
}

// callerID extracts the participant identity. Authentication of voter
// identities is the host platform's concern; the API only requires that
// a caller present one.
func callerID(r *http.Request) string {
	return r.Header.Get("X-Voter-ID")
}

// RegisterProposal handles POST /ballots/{id}/proposals
func (h *VotingHandler) RegisterProposal(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	caller := callerID(r)
	if caller == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	var req models.RegisterProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
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

	proposalID, ev, err := rg.RegisterProposal(caller, req.Description)
	if err != nil {
		registryError(w, err)
		return
	}

	if err := db.SaveProposal(tx, ballotID, proposalID, rg.Proposals[proposalID]); err != nil {
		slog.Error("failed to save proposal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register proposal")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	if err := db.AppendEvent(tx, ballotID, ev, ipHash, time.Now()); err != nil {
		slog.Error("failed to append event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register proposal")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register proposal")
		return
	}

	slog.Info("proposal registered", "ballot_id", ballotID, "proposal_id", proposalID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterProposalResponse{
		ProposalID: proposalID,
	})
}

// CastVote handles POST /ballots/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	caller := callerID(r)
	if caller == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
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

	ev, err := rg.VoteForProposal(caller, req.ProposalID)
	if err != nil {
		registryError(w, err)
		return
	}

	// One vote touches two rows: the voter's record and the proposal's
	// count. Both commit together or not at all.
	if err := db.SaveVoter(tx, ballotID, caller, rg.Voters[caller]); err != nil {
		slog.Error("failed to save voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}
	if err := db.SaveProposal(tx, ballotID, req.ProposalID, rg.Proposals[req.ProposalID]); err != nil {
		slog.Error("failed to save proposal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	if err := db.AppendEvent(tx, ballotID, ev, ipHash, time.Now()); err != nil {
		slog.Error("failed to append event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "ballot_id", ballotID, "voter_id", caller, "proposal_id", req.ProposalID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		ProposalID: req.ProposalID,
		Message:    "Vote recorded",
	})
}

// ListProposals handles GET /ballots/{id}/proposals
// Vote counts stay hidden until the ballot is tallied.
func (h *VotingHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
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

	tallied := rg.Status == registry.VotesTallied
	views := []models.ProposalView{}
	for i, p := range rg.Proposals {
		view := models.ProposalView{
			ProposalID:  i,
			Description: p.Description,
		}
		if tallied {
			count := p.VoteCount
			view.VoteCount = &count
		}
		views = append(views, view)
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}
