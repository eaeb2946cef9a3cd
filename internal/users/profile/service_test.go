// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package profile_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogit-app/blogit/internal/blog"
	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/sec"
	"github.com/blogit-app/blogit/internal/users/auth"
	"github.com/blogit-app/blogit/internal/users/profile"
	"github.com/blogit-app/blogit/pkg/pointer"
)

// fakeUserRepository mimics the unique-constraint behavior of the real store.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepository) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == login || user.Username == login {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	for id, existing := range f.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return apperr.Conflict("Username already exists")
		}
		if existing.Email == user.Email {
			return apperr.Conflict("Email already exists")
		}
	}
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

// fakeBlogLister returns a canned per-author blog list.
type fakeBlogLister struct {
	byAuthor map[string][]*blog.Blog
}

func (f *fakeBlogLister) ListByAuthor(_ context.Context, authorID string) ([]*blog.Blog, error) {
	return f.byAuthor[authorID], nil
}

func newTestService(t *testing.T) (*profile.Service, *fakeUserRepository, *fakeBlogLister) {
	t.Helper()

	users := newFakeUserRepository()
	hash, err := sec.HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	require.NoError(t, users.Create(context.Background(), &auth.User{
		ID:           "user-1",
		FirstName:    "Bob",
		LastName:     "Stone",
		Username:     "bobstone",
		Email:        "bob@blogit.app",
		PasswordHash: hash,
	}))
	require.NoError(t, users.Create(context.Background(), &auth.User{
		ID:        "user-2",
		FirstName: "Ada",
		LastName:  "Reyes",
		Username:  "adareyes",
		Email:     "ada@blogit.app",
	}))

	blogs := &fakeBlogLister{byAuthor: map[string][]*blog.Blog{
		"user-1": {{ID: "blog-1", AuthorID: "user-1", Title: "Hello"}},
	}}

	return profile.NewService(users, blogs), users, blogs
}

/*
TestService_Get verifies the profile aggregate: account plus authored blogs.
*/
func TestService_Get(t *testing.T) {
	service, _, _ := newTestService(t)

	result, err := service.Get(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "bobstone", result.Username)
	require.Len(t, result.Blogs, 1)
	assert.Equal(t, "blog-1", result.Blogs[0].ID)
}

/*
TestService_Get_NoBlogs verifies that a user without posts gets an empty
slice, not null.
*/
func TestService_Get_NoBlogs(t *testing.T) {
	service, _, _ := newTestService(t)

	result, err := service.Get(context.Background(), "user-2")
	require.NoError(t, err)

	assert.NotNil(t, result.Blogs)
	assert.Empty(t, result.Blogs)
}

/*
TestService_Update_Partial verifies pointer semantics: nil fields stay
untouched.
*/
func TestService_Update_Partial(t *testing.T) {
	service, users, _ := newTestService(t)

	updated, err := service.Update(context.Background(), "user-1", profile.UpdateInput{
		FirstName: pointer.To("Robert"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Robert", updated.FirstName)
	assert.Equal(t, "Stone", updated.LastName)
	assert.Equal(t, "bobstone", updated.Username)
	assert.Equal(t, "Robert", users.users["user-1"].FirstName)
}

/*
TestService_Update_Validation verifies per-field rules on provided values.
*/
func TestService_Update_Validation(t *testing.T) {
	service, _, _ := newTestService(t)

	tests := []struct {
		name  string
		input profile.UpdateInput
	}{
		{"empty_first_name", profile.UpdateInput{FirstName: pointer.To("")}},
		{"short_username", profile.UpdateInput{Username: pointer.To("ab")}},
		{"bad_email", profile.UpdateInput{Email: pointer.To("not-an-email")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Update(context.Background(), "user-1", tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_Update_Conflict verifies that taking another user's identity
surfaces as a Conflict.
*/
func TestService_Update_Conflict(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Update(context.Background(), "user-1", profile.UpdateInput{
		Username: pointer.To("adareyes"),
	})
	assert.True(t, apperr.IsConflict(err))
}

/*
TestService_UpdatePassword verifies rotation with the correct current
password.
*/
func TestService_UpdatePassword(t *testing.T) {
	service, users, _ := newTestService(t)

	err := service.UpdatePassword(context.Background(), "user-1", profile.PasswordInput{
		CurrentPassword: "Str0ng!Pass",
		NewPassword:     "N3w!Passw0rd",
	})
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("N3w!Passw0rd", users.users["user-1"].PasswordHash))
}

/*
TestService_UpdatePassword_WrongCurrent verifies that a wrong current
password blocks the rotation.
*/
func TestService_UpdatePassword_WrongCurrent(t *testing.T) {
	service, users, _ := newTestService(t)
	before := users.users["user-1"].PasswordHash

	err := service.UpdatePassword(context.Background(), "user-1", profile.PasswordInput{
		CurrentPassword: "Wr0ng!Pass",
		NewPassword:     "N3w!Passw0rd",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	assert.Equal(t, before, users.users["user-1"].PasswordHash)
}

/*
TestService_UpdatePassword_WeakNew verifies the strength policy on the
replacement password.
*/
func TestService_UpdatePassword_WeakNew(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.UpdatePassword(context.Background(), "user-1", profile.PasswordInput{
		CurrentPassword: "Str0ng!Pass",
		NewPassword:     "weakpass",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
