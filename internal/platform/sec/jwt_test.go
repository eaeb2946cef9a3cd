// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogit-app/blogit/internal/platform/sec"
)

const testIssuer = "blogit.app"

func newTestTokenService(t *testing.T, secret string) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(secret, testIssuer)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_EmptySecret verifies that an empty secret is rejected at
construction time.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", testIssuer)
	assert.Error(t, err)
}

/*
TestTokenService_RoundTrip verifies issuance and verification of a token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t, "test-secret")

	token, err := service.GenerateAccessToken("user-123", "bob", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
}

/*
TestTokenService_Expired verifies that an expired token fails verification.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t, "test-secret")

	token, err := service.GenerateAccessToken("user-123", "bob", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies that a token signed with a different
secret is rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuing := newTestTokenService(t, "secret-a")
	verifying := newTestTokenService(t, "secret-b")

	token, err := issuing.GenerateAccessToken("user-123", "bob", time.Hour)
	require.NoError(t, err)

	_, err = verifying.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Malformed verifies that garbage input fails verification.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t, "test-secret")

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := service.VerifyToken(input)
		assert.Error(t, err, "input %q should not verify", input)
	}
}

/*
TestGenerateSecureToken verifies token length, hex encoding, and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, first, 64) // 32 bytes hex-encoded

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies that token hashing is deterministic and one-way.
*/
func TestHashToken(t *testing.T) {
	hash := sec.HashToken("some-token")

	assert.Len(t, hash, 64) // SHA-256 hex digest
	assert.Equal(t, hash, sec.HashToken("some-token"))
	assert.NotEqual(t, hash, sec.HashToken("other-token"))
}
