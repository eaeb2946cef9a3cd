// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/sec"
	"github.com/blogit-app/blogit/internal/platform/validate"
	"github.com/blogit-app/blogit/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository       UserRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
}

// NewService constructs a new auth [Service] with the necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:       userRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// AuthSession is the result of a successful registration or login: a fresh
// stateless session token plus the compact user reference for the client.
type AuthSession struct {
	Token string    `json:"token"`
	User  PublicRef `json:"user"`
}

/*
Register validates, hashes, and persists a brand new user account, then
issues a session token.

Description: Validation (including password strength) runs before any store
access; a single INSERT with unique constraints guarantees no partial record
and no duplicate-check race.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Token + created user reference
  - err: Validation, Conflict (duplicate identity), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// Validate before any store access. A weak password never reaches
	// the hashing stage.
	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName).
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	// Persist the user. A duplicate username/email violates the unique
	// constraint and comes back as apperr.Conflict — the authoritative signal.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{Token: token, User: user.Ref()}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

/*
Login validates user credentials and issues a fresh session token.

Description: Looks up the account by email-or-username and performs a
constant-time password comparison. An unknown account and a wrong password
produce the exact same error.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session token and user reference
  - err: InvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {

	// Flexible login: a single lookup by email or username.
	user, err := service.userRepository.FindByLogin(context, input.Login)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	// Verify password hash using bcrypt's constant-time comparison to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{Token: token, User: user.Ref()}, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token, stores its hash in Redis keyed to the
account, and returns the raw token for delivery. The caller always responds
generically so the endpoint cannot be used to enumerate accounts.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Raw reset token (empty if the account does not exist)
  - err: Generation or storage errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// NOTE: No NOT_FOUND is returned if the email doesn't exist, to prevent user enumeration.
	user, err := service.userRepository.FindByLogin(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, enforces the password strength policy on the
replacement, rotates the stored hash, and burns the token.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation, NotFound (bad/expired token), or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	validator := &validate.Validator{}
	validator.Required(FieldToken, token).Password(FieldNewPassword, newPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	tokenHash := sec.HashToken(token)
	userID, err := service.resetTokenRepository.Get(context, tokenHash)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	// Burn the used token so it can never be replayed.
	_ = service.resetTokenRepository.Delete(context, tokenHash)

	return nil
}
