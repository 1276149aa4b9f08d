// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGeneratePIN(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		pin, err := GeneratePIN()
		if err != nil {
			t.Fatalf("GeneratePIN failed: %v", err)
		}
		if !ValidPINFormat(pin) {
			t.Errorf("generated PIN %q has invalid format", pin)
		}
		seen[pin] = true
	}
	// 100 draws from 10000 values should almost never all collide
	if len(seen) < 50 {
		t.Errorf("suspiciously low PIN variety: %d distinct of 100", len(seen))
	}
}

func TestValidPINFormat(t *testing.T) {
	tests := []struct {
		pin  string
		want bool
	}{
		{"0000", true},
		{"0042", true},
		{"9999", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
		{"12 4", false},
	}

	for _, tt := range tests {
		if got := ValidPINFormat(tt.pin); got != tt.want {
			t.Errorf("ValidPINFormat(%q) = %v, want %v", tt.pin, got, tt.want)
		}
	}
}

func TestPINMatches(t *testing.T) {
	if !PINMatches("0042", "0042") {
		t.Error("identical PINs should match")
	}
	if PINMatches("0042", "0043") {
		t.Error("different PINs should not match")
	}
	if PINMatches("0042", "") {
		t.Error("empty submission should not match")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	token1, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}
	token2, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if token1 == token2 {
		t.Error("two tokens should not collide")
	}
	if strings.ContainsAny(token1, "+/=") {
		t.Errorf("token %q is not URL-safe unpadded base64", token1)
	}
	// 24 bytes → 32 base64 characters
	if len(token1) != 32 {
		t.Errorf("expected 32-character token, got %d", len(token1))
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(id))
	}
}

func TestCheckSecret(t *testing.T) {
	if err := CheckSecret("secret", "secret"); err != nil {
		t.Errorf("matching secrets rejected: %v", err)
	}
	if err := CheckSecret("wrong", "secret"); err == nil {
		t.Error("mismatched secrets accepted")
	}
	if err := CheckSecret("", "secret"); err == nil {
		t.Error("empty presentation accepted")
	}
	// An unset configured secret must never admit anyone
	if err := CheckSecret("", ""); err == nil {
		t.Error("empty configured secret accepted")
	}
}
