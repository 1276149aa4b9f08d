// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// PIN and lockout policy. Named constants rather than literals so a
// deployment that needs a longer PIN or a different budget changes one line.
const (
	PINLength      = 4
	MaxPINAttempts = 3
)

// DefaultSessionTTL bounds how long a verified session token stays valid.
const DefaultSessionTTL = 12 * time.Hour

var (
	ErrInvalidSecret = errors.New("invalid secret")
	ErrInvalidPIN    = errors.New("invalid pin format")
)

// GeneratePIN creates a random numeric PIN of PINLength digits.
// Leading zeros are allowed, so "0042" is a valid PIN.
func GeneratePIN() (string, error) {
	digits := make([]byte, PINLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate pin: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// ValidPINFormat reports whether s is exactly PINLength decimal digits.
func ValidPINFormat(s string) bool {
	if len(s) != PINLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PINMatches compares a submitted PIN against the stored one in constant
// time so the comparison leaks nothing about the prefix.
func PINMatches(stored, submitted string) bool {
	return hmac.Equal([]byte(stored), []byte(submitted))
}

// GenerateSessionToken creates a random secure token scoped to one identity.
// The token is opaque; its binding to an identity lives in the session table.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CheckSecret compares a presented shared secret (deployment key or admin
// secret) against the configured value in constant time.
func CheckSecret(presented, configured string) error {
	if configured == "" || !hmac.Equal([]byte(presented), []byte(configured)) {
		return ErrInvalidSecret
	}
	return nil
}
