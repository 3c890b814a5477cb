// Copyright (c) 2026 barroqt.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and ID generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(ballotID, salt)
	err := auth.ValidateAdminKey(ballotID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same ballot ID and salt always produce the same key. This allows
validation without storing the key in the database. A valid admin key
authenticates the caller as the ballot's administrator.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving audit trails:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. Stored alongside
audit events instead of the raw client address.
*/
package auth
