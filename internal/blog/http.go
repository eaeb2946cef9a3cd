// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package blog

import (
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/middleware"
	requestutil "github.com/blogit-app/blogit/internal/platform/request"
	"github.com/blogit-app/blogit/internal/platform/respond"
	"github.com/blogit-app/blogit/internal/platform/validate"
	"github.com/blogit-app/blogit/pkg/pagination"
	"github.com/blogit-app/blogit/pkg/pointer"
)

// maxPatchFormMemory bounds the in-memory portion of a multipart PATCH body.
const maxPatchFormMemory = 8 << 20 // 8 MiB

// Handler implements the blog HTTP endpoints.
type Handler struct {
	blogService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{blogService: service}
}

// Routes returns a [chi.Router] configured with the blog routes.
//
// # Endpoints
//   - GET    /          : Public, paginated list of visible blogs.
//   - GET    /{blogID}  : Public, single blog with author view.
//   - POST   /          : Authenticated, create a blog.
//   - PATCH  /{blogID}  : Authenticated owner, partial update (JSON or multipart).
//   - DELETE /{blogID}  : Authenticated owner, soft delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/{blogID}", handler.get)

	// Owner-gated endpoints
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
		protected.Patch("/{blogID}", handler.update)
		protected.Delete("/{blogID}", handler.remove)
	})

	return router
}

/*
List returns a page of visible blogs, newest first.

GET /api/blogs?page=1&limit=20

Response:
  - 200: []Blog with author views; pagination counts travel in the
    X-Total-Count, X-Total-Pages and X-Page headers
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	blogs, meta, err := handler.blogService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Serialize the empty page as [] rather than null.
	if blogs == nil {
		blogs = []*Blog{}
	}
	respond.Paginated(writer, blogs, meta)
}

/*
Get returns a single visible blog.

GET /api/blogs/{blogID}

Response:
  - 200: Blog with full content and author view
  - 404: NOT_FOUND: Unknown or deleted blog
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	blogID := requestutil.ID(request, "blogID")

	blog, err := handler.blogService.Get(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, blog)
}

/*
Create authors a new blog owned by the authenticated user.

POST /api/blogs

Request:
  - Body: CreateInput (Title, Synopsis, Content, FeaturedImg)

Response:
  - 201: Blog: The created blog with author view
  - 400: VALIDATION_ERROR: Missing or oversized fields
  - 401: UNAUTHORIZED: No valid session token
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	blog, err := handler.blogService.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, blog)
}

/*
Update applies a partial update to a blog owned by the authenticated user.

PATCH /api/blogs/{blogID}

Description: Accepts either a JSON body of optional fields or a multipart
form carrying text fields plus a replacement featured image. A replaced
image evicts the previous file from the upload store.

Request:
  - Body: UpdateInput as JSON, or multipart form with an optional
    "featuredImg" text value or file part (the file wins when both
    are present)

Response:
  - 200: Blog: The updated blog
  - 400: VALIDATION_ERROR: Bad payload
  - 401: UNAUTHORIZED: No valid session token
  - 403: FORBIDDEN: Blog owned by another user
  - 404: NOT_FOUND: Unknown or deleted blog
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	blogID := requestutil.ID(request, "blogID")

	input, image, err := handler.decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if image != nil {
		defer image.File.Close()
	}

	blog, err := handler.blogService.Update(request.Context(), userID, blogID, input, image)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, blog)
}

/*
Remove soft-deletes a blog owned by the authenticated user.

DELETE /api/blogs/{blogID}

Description: The row is retained with its deletion flag set; all read paths
stop returning it immediately.

Response:
  - 200: Success: Deletion confirmation message
  - 401: UNAUTHORIZED: No valid session token
  - 403: FORBIDDEN: Blog owned by another user
  - 404: NOT_FOUND: Unknown or already deleted blog
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	blogID := requestutil.ID(request, "blogID")

	if err := handler.blogService.Delete(request.Context(), userID, blogID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Blog deleted successfully",
	})
}

// decodeUpdate reads an UpdateInput from either a JSON body or a multipart
// form. Multipart text fields count as "present" only when the form carries
// the key, preserving PATCH partial-update semantics. A file part is handed
// back undecoded: the service stores it only after the ownership and
// validation gates pass.
func (handler *Handler) decodeUpdate(request *http.Request) (UpdateInput, *ImageUpload, error) {
	contentType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if contentType != "multipart/form-data" {
		var input UpdateInput
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			return UpdateInput{}, nil, validate.ErrInvalidJSON
		}
		return input, nil, nil
	}

	if err := request.ParseMultipartForm(maxPatchFormMemory); err != nil {
		return UpdateInput{}, nil, apperr.ValidationError("Invalid multipart payload")
	}

	var input UpdateInput
	form := request.MultipartForm
	if values, ok := form.Value[FieldTitle]; ok && len(values) > 0 {
		input.Title = pointer.To(values[0])
	}
	if values, ok := form.Value[FieldSynopsis]; ok && len(values) > 0 {
		input.Synopsis = pointer.To(values[0])
	}
	if values, ok := form.Value[FieldContent]; ok && len(values) > 0 {
		input.Content = pointer.To(values[0])
	}
	if values, ok := form.Value[FieldFeaturedImg]; ok && len(values) > 0 {
		input.FeaturedImg = pointer.To(values[0])
	}

	file, header, err := request.FormFile(FieldFeaturedImg)
	if err != nil {
		if err == http.ErrMissingFile {
			return input, nil, nil
		}
		return UpdateInput{}, nil, apperr.ValidationError("Invalid featured image upload")
	}

	return input, &ImageUpload{File: file, Header: header}, nil
}
