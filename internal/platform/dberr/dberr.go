// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Why here?
//
// Classifying SQLSTATE codes in one place means the unique constraints on
// users.username and users.email are the single authoritative duplicate
// signal — repositories never pre-check and race.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/blogit-app/blogit/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		if resource != "" {
			return apperr.NotFound(resource)
		}
		return ErrNotFound
	}

	// 2. Constraint violations become client-safe Conflict errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict(conflictMessage(pgErr.ConstraintName))
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// conflictMessage derives a client-safe message from the violated constraint name.
func conflictMessage(constraint string) string {
	switch {
	case strings.Contains(constraint, "username"):
		return "Username is already taken"
	case strings.Contains(constraint, "email"):
		return "Email is already registered"
	default:
		return "Resource already exists"
	}
}
