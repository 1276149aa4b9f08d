// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"encoding/hex"
	"hash/fnv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Resolve maps a display name and organization to a stable identity id.
// The mapping is pure and total: the same normalized input always yields
// the same id, so the same person on a new device reproduces their id
// without any lookup.
//
// The normalization and hash together are a versioned contract. Changing
// either invalidates every identity already in the log store, so neither
// may change for the lifetime of a deployment.
func Resolve(displayName, organization string) string {
	h := fnv.New32a()
	h.Write([]byte(Normalize(displayName)))
	h.Write([]byte{'|'})
	h.Write([]byte(Normalize(organization)))
	return hex.EncodeToString(h.Sum(nil))
}

// foldMarks decomposes to NFD, strips combining marks, and recomposes,
// so "José" and "Jose" normalize identically.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases, folds diacritics, strips non-alphanumeric runes,
// and collapses whitespace runs to a single space.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
		// Everything else (punctuation, symbols) is dropped outright.
	}
	return b.String()
}
