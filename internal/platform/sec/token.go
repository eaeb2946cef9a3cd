// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a hex-encoded random token of byteLength bytes.
//
// Used for single-purpose secrets such as password reset tokens. The raw value
// is sent to the user; only its hash (see [HashToken]) is ever stored.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Reset tokens are high-entropy random values, so a fast hash is sufficient
// here — bcrypt is reserved for low-entropy user passwords.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
