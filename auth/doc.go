// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides PIN, token, and shared-secret utilities.

# PINs

PINs are random 4-digit numeric codes, leading zeros allowed:

	pin, err := auth.GeneratePIN()

A PIN is issued exactly once per identity and never resent; there is no
secondary recovery channel. After MaxPINAttempts consecutive failures the
credential locks until an administrator resets it. Compare PINs with

	auth.PINMatches(stored, submitted)

which runs in constant time.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded, bound to a single identity in the
session table, and expire after DefaultSessionTTL.

# Shared Secrets

Two deployment-wide secrets gate the API: the deploy key (required on every
request) and the admin secret (reset, export, results). Both are checked
with constant-time comparison:

	err := auth.CheckSecret(presented, configured)

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
