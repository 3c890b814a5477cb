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

type BallotHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBallotHandler(conn *sql.DB, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{db: conn, cfg: cfg}
}

// requireAdminKey validates the X-Admin-Key header for a ballot. A valid
// key authenticates the caller as the ballot's administrator.
func requireAdminKey(r *http.Request, ballotID, salt string) error {
	return auth.ValidateAdminKey(ballotID, r.Header.Get("X-Admin-Key"), salt)
}

// CreateBallot handles POST /ballots
func (h *BallotHandler) CreateBallot(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	ballotID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate ballot ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create ballot")
		return
	}

	// The creator may bring their own participant identity; otherwise
	// one is minted for them.
	adminID := req.AdminID
	if adminID == "" {
		if adminID, err = auth.GenerateID(12); err != nil {
			slog.Error("failed to generate admin ID", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create ballot")
			return
		}
	}

	adminKey := auth.GenerateAdminKey(ballotID, h.cfg.AdminKeySalt)

	if err := db.CreateBallot(h.db, ballotID, req.Title, adminID, time.Now()); err != nil {
		slog.Error("failed to insert ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create ballot")
		return
	}

	slog.Info("ballot created", "ballot_id", ballotID, "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateBallotResponse{
		BallotID: ballotID,
		AdminID:  adminID,
		AdminKey: adminKey,
	})
}

// GetBallot handles GET /ballots/{id}
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	ballot, err := db.GetBallot(h.db, ballotID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		slog.Error("failed to query ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var voterCount, proposalCount int
	err = h.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM voter WHERE ballot_id = $1 AND is_registered = 1),
			(SELECT COUNT(*) FROM proposal WHERE ballot_id = $1)
	`, ballotID).Scan(&voterCount, &proposalCount)
	if err != nil {
		slog.Error("failed to count ballot rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotView{
		BallotID:      ballot.ID,
		Title:         ballot.Title,
		Status:        ballot.Status.String(),
		VoterCount:    voterCount,
		ProposalCount: proposalCount,
		CreatedAt:     ballot.CreatedAt,
		TalliedAt:     ballot.TalliedAt,
	})
}

// WhitelistVoter handles POST /ballots/{id}/voters
func (h *BallotHandler) WhitelistVoter(w http.ResponseWriter, r *http.Request) {
	ballotID := r.PathValue("id")
	if ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot_id is required")
		return
	}

	if err := requireAdminKey(r, ballotID, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.WhitelistVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
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

	ev, err := rg.WhitelistVoter(rg.Admin, req.VoterID)
	if err != nil {
		registryError(w, err)
		return
	}

	if err := db.SaveVoter(tx, ballotID, req.VoterID, rg.Voters[req.VoterID]); err != nil {
		slog.Error("failed to save voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to whitelist voter")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	if err := db.AppendEvent(tx, ballotID, ev, ipHash, time.Now()); err != nil {
		slog.Error("failed to append event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to whitelist voter")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to whitelist voter")
		return
	}

	slog.Info("voter whitelisted", "ballot_id", ballotID, "voter_id", req.VoterID)

	middleware.JSONResponse(w, http.StatusCreated, models.WhitelistVoterResponse{
		VoterID: req.VoterID,
	})
}

// transition runs one admin phase transition inside a transaction and
// reports the old and new phases.
func (h *BallotHandler) transition(w http.ResponseWriter, r *http.Request, apply func(*registry.Registry) (registry.Event, error)) {
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

	ev, err := apply(rg)
	if err != nil {
		registryError(w, err)
		return
	}
	change := ev.(registry.StatusChanged)

	var talliedAt *time.Time
	if rg.Status == registry.VotesTallied {
		now := time.Now()
		talliedAt = &now
	}

	if err := db.SaveStatus(tx, ballotID, rg.Status, rg.WinningProposalID, talliedAt); err != nil {
		slog.Error("failed to save status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change phase")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	if err := db.AppendEvent(tx, ballotID, ev, ipHash, time.Now()); err != nil {
		slog.Error("failed to append event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change phase")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change phase")
		return
	}

	slog.Info("phase changed", "ballot_id", ballotID, "previous", change.Previous.String(), "status", change.New.String())

	middleware.JSONResponse(w, http.StatusOK, models.StatusChangeResponse{
		BallotID: ballotID,
		Previous: change.Previous.String(),
		Status:   change.New.String(),
	})
}

// StartProposals handles POST /ballots/{id}/proposals/start
func (h *BallotHandler) StartProposals(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(rg *registry.Registry) (registry.Event, error) {
		return rg.StartProposals(rg.Admin)
	})
}

// EndProposals handles POST /ballots/{id}/proposals/end
func (h *BallotHandler) EndProposals(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(rg *registry.Registry) (registry.Event, error) {
		return rg.EndProposals(rg.Admin)
	})
}

// StartVoting handles POST /ballots/{id}/voting/start
func (h *BallotHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(rg *registry.Registry) (registry.Event, error) {
		return rg.StartVotingSession(rg.Admin)
	})
}

// EndVoting handles POST /ballots/{id}/voting/end
func (h *BallotHandler) EndVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(rg *registry.Registry) (registry.Event, error) {
		return rg.EndVotingSession(rg.Admin)
	})
}

// Tally handles POST /ballots/{id}/tally
// The transition recounts on its own, so a prior count call is optional.
func (h *BallotHandler) Tally(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(rg *registry.Registry) (registry.Event, error) {
		return rg.TallyVotes(rg.Admin)
	})
}
