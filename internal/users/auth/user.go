// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

/*
Package auth implements the user identity and session management layer.

It defines the core User entity and the logic for registration, login,
token issuance, and password recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"strings"
	"time"
)

// # Domain Entities

// User represents a registered member of the BlogIt platform.
//
// JSON field casing follows the public API contract consumed by the SPA
// front-end (camelCase).
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName returns the user's display name ("First Last").
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the uppercase initials used as the default avatar
// (e.g. "Bob Stone" → "BS").
func (u *User) Initials() string {
	var b strings.Builder
	for _, part := range []string{u.FirstName, u.LastName} {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}

// PublicRef is the compact user reference embedded in auth responses.
type PublicRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Ref returns the compact public reference for the user.
func (u *User) Ref() PublicRef {
	return PublicRef{ID: u.ID, Username: u.Username}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldLogin           = "emailOrUsername"
	FieldToken           = "token"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)
