// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogit-app/blogit/internal/platform/middleware"
	requestutil "github.com/blogit-app/blogit/internal/platform/request"
	"github.com/blogit-app/blogit/internal/platform/respond"
	"github.com/blogit-app/blogit/internal/platform/validate"
)

// Handler implements the profile HTTP endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Routes returns a [chi.Router] with the profile routes. Everything here
// requires an authenticated session.
//
// # Endpoints
//   - GET   /                : Own account plus authored blogs.
//   - PATCH /                : Partial identity update.
//   - PATCH /update-password : Password rotation.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/", handler.get)
	router.Patch("/", handler.update)
	router.Patch("/update-password", handler.updatePassword)

	return router
}

/*
Get returns the authenticated user's profile page payload.

GET /api/profile

Response:
  - 200: Profile: Account fields plus the caller's visible blogs
  - 401: UNAUTHORIZED: No valid session token
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
Update applies a partial update to the authenticated user's identity fields.

PATCH /api/profile

Request:
  - Body: UpdateInput (FirstName, LastName, Username, Email — all optional)

Response:
  - 200: User: The updated account
  - 400: VALIDATION_ERROR: Bad field values
  - 401: UNAUTHORIZED: No valid session token
  - 409: CONFLICT: Username or Email already taken
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.profileService.Update(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdatePassword rotates the authenticated user's password.

PATCH /api/profile/update-password

Request:
  - Body: PasswordInput (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password updated
  - 400: VALIDATION_ERROR: Wrong current password or weak new password
  - 401: UNAUTHORIZED: No valid session token
*/
func (handler *Handler) updatePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.profileService.UpdatePassword(request.Context(), userID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Password updated successfully",
	})
}
