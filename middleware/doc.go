// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Logging

WithLogging wraps a handler with structured request logging via log/slog,
recording method, path, remote address, response status and duration.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
	err := middleware.ParseJSONBody(r, &req)

ErrorResponse writes a models.ErrorResponse with the standard status text
as the error field and a human-readable message.

# CORS

CORS allows cross-origin requests and answers preflight OPTIONS,
exposing the X-Admin-Key and X-Voter-ID headers the API uses for caller
identity.

# Client IP

GetClientIP resolves the caller's address for audit hashing, preferring
X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
