// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT session token remains valid.
	// There is no refresh mechanism: expired sessions require re-login.
	AccessTokenTTL = 24 * time.Hour

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// MinUsernameLength is the shortest accepted username.
	MinUsernameLength = 3
)
