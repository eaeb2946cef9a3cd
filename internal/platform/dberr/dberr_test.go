// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/dberr"
)

/*
TestWrap_NoRows verifies pgx.ErrNoRows maps to a resource-named 404.
*/
func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "Blog")

	require.True(t, apperr.IsNotFound(err))
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Contains(t, ae.Message, "Blog")
}

/*
TestWrap_UniqueViolation verifies SQLSTATE 23505 maps to a client-safe 409
whose message is derived from the violated constraint.
*/
func TestWrap_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		message    string
	}{
		{"username", "users_username_key", "Username is already taken"},
		{"email", "users_email_key", "Email is already registered"},
		{"unknown", "blogs_slug_key", "Resource already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: tt.constraint,
			}

			err := dberr.Wrap(pgErr, "User")
			require.True(t, apperr.IsConflict(err))
			assert.True(t, dberr.IsUniqueViolation(pgErr))

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.message, ae.Message)
		})
	}
}

/*
TestWrap_Unknown verifies that unclassified errors become opaque 500s that
never leak driver details to the client.
*/
func TestWrap_Unknown(t *testing.T) {
	cause := errors.New("connection refused: 10.0.0.5:5432")

	err := dberr.Wrap(cause, "User")
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
	assert.NotContains(t, ae.Message, "10.0.0.5")
	assert.ErrorIs(t, err, cause)
}

/*
TestWrap_Nil verifies the nil passthrough.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "User"))
}
