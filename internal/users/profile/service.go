// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

/*
Package profile implements self-service account management for the
authenticated user: viewing the profile page, editing identity fields, and
rotating the password.

Every operation acts on the caller's own record — the user id always comes
from verified token claims, never from the request payload or URL.
*/
package profile

import (
	"context"
	"time"

	"github.com/blogit-app/blogit/internal/blog"
	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/sec"
	"github.com/blogit-app/blogit/internal/platform/validate"
	"github.com/blogit-app/blogit/internal/users/auth"
	"github.com/blogit-app/blogit/pkg/pointer"
)

// BlogLister exposes the one blog-domain read the profile page needs.
type BlogLister interface {
	ListByAuthor(ctx context.Context, authorID string) ([]*blog.Blog, error)
}

// Service implements the profile business logic.
type Service struct {
	userRepository auth.UserRepository
	blogs          BlogLister
}

// NewService creates a profile Service.
func NewService(userRepository auth.UserRepository, blogs BlogLister) *Service {
	return &Service{userRepository: userRepository, blogs: blogs}
}

// Profile is the aggregate returned by the profile page: the account fields
// at the top level plus every visible blog the user has authored.
type Profile struct {
	*auth.User
	Blogs []*blog.Blog `json:"blogs"`
}

// UpdateInput carries the mutable identity fields. Nil pointers mean
// "leave unchanged".
type UpdateInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
}

// PasswordInput carries a password rotation request.
type PasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Get returns the caller's account together with their visible blogs.
func (service *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	blogs, err := service.blogs.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*blog.Blog{}
	}

	return &Profile{User: user, Blogs: blogs}, nil
}

// Update applies a partial update to the caller's identity fields.
//
// Username and email uniqueness is enforced by the storage constraints and
// surfaces as a Conflict error; there is no racy pre-check.
func (service *Service) Update(ctx context.Context, userID string, input UpdateInput) (*auth.User, error) {
	v := &validate.Validator{}
	if input.FirstName != nil {
		v.Required(auth.FieldFirstName, *input.FirstName)
	}
	if input.LastName != nil {
		v.Required(auth.FieldLastName, *input.LastName)
	}
	if input.Username != nil {
		v.Required(auth.FieldUsername, *input.Username).
			MinLen(auth.FieldUsername, *input.Username, auth.MinUsernameLength)
	}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = pointer.Fallback(input.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(input.LastName, user.LastName)
	user.Username = pointer.Fallback(input.Username, user.Username)
	user.Email = pointer.Fallback(input.Email, user.Email)
	user.UpdatedAt = time.Now().UTC()

	if err := service.userRepository.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword rotates the caller's password after verifying the current
// one. The new password must satisfy the strength policy.
func (service *Service) UpdatePassword(ctx context.Context, userID string, input PasswordInput) error {
	v := &validate.Validator{}
	err := v.
		Required(auth.FieldCurrentPassword, input.CurrentPassword).
		Password(auth.FieldNewPassword, input.NewPassword).
		Err()
	if err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return apperr.ValidationError("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	return service.userRepository.UpdatePassword(ctx, userID, newHash)
}
