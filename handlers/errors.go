// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/barroqt/voting/middleware"
	"github.com/barroqt/voting/registry"
)

// registryError translates a failed registry operation into an HTTP
// error. Authorization failures map to 401/403, phase and double-vote
// conflicts to 409, bad proposal references to 400; anything outside
// the registry's taxonomy is treated as an internal error.
func registryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Caller is not the administrator")
	case errors.Is(err, registry.ErrNotRegistered):
		middleware.ErrorResponse(w, http.StatusForbidden, "Caller is not a registered voter")
	case errors.Is(err, registry.ErrInvalidPhase):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, registry.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Voter has already voted")
	case errors.Is(err, registry.ErrSelfWhitelist):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Administrator cannot whitelist itself")
	case errors.Is(err, registry.ErrInvalidProposal):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Proposal id out of range")
	default:
		slog.Error("registry operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
