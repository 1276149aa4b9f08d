// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity derives stable juror identifiers from names.

# Resolution

	id := identity.Resolve("José García", "Tech University")

The id is the hex-encoded 32-bit FNV-1a hash of the normalized display
name and organization joined by "|". There is no account database: any
device that knows the name and organization reproduces the same id.

# Normalization

Normalize applies, in order:

  - lower-casing
  - diacritic folding (NFD decomposition, combining marks removed)
  - removal of non-alphanumeric runes
  - collapse of whitespace runs to single spaces

So "José  GARCÍA" and "jose garcia" resolve to the same identity, while
genuinely different names almost never collide (32-bit hash width).

Both the normalization and the hash are a versioned contract: changing
either orphans every credential and record keyed by an existing id.
*/
package identity
