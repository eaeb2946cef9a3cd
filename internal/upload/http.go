// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/middleware"
	"github.com/blogit-app/blogit/internal/platform/respond"
)

// FieldFile is the multipart form field carrying the uploaded image.
const FieldFile = "file"

// Handler implements the image upload endpoint.
type Handler struct {
	uploadService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{uploadService: service}
}

// Routes returns a [chi.Router] with the upload routes.
//
// # Endpoints
//   - POST / : Authenticated, stores one image and returns its public URL.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.upload)
	})

	return router
}

/*
Upload stores a single image for the authenticated user.

POST /api/upload

Request:
  - Body: multipart form with a "file" part

Response:
  - 200: {url}: Public URL of the stored image
  - 400: VALIDATION_ERROR: Missing part, wrong type, or oversized file
  - 401: UNAUTHORIZED: No valid session token
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxUploadSize+1)

	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("An image is required in the \"file\" field"))
		return
	}
	defer file.Close()

	url, err := handler.uploadService.Save(request.Context(), file, header)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"url": url})
}
