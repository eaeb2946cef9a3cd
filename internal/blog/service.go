// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package blog

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/ctxutil"
	"github.com/blogit-app/blogit/internal/platform/validate"
	"github.com/blogit-app/blogit/pkg/pagination"
	"github.com/blogit-app/blogit/pkg/pointer"
	"github.com/blogit-app/blogit/pkg/slug"
	"github.com/blogit-app/blogit/pkg/uuidv7"
)

// ImageStore persists uploaded images and deletes them by public URL.
// Removal is best-effort: callers log failures instead of propagating them.
type ImageStore interface {
	Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(url string) error
}

// ImageUpload is an undecoded replacement featured image. Nothing is written
// to the store until the ownership and validation gates have passed.
type ImageUpload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// Service implements the blog business logic.
type Service struct {
	repository Repository
	images     ImageStore
}

// NewService creates a blog Service.
func NewService(repository Repository, images ImageStore) *Service {
	return &Service{repository: repository, images: images}
}

// CreateInput carries the fields accepted when authoring a blog.
type CreateInput struct {
	Title       string `json:"title"`
	Synopsis    string `json:"synopsis"`
	Content     string `json:"content"`
	FeaturedImg string `json:"featuredImg"`
}

// UpdateInput carries the mutable blog fields. Nil pointers mean
// "leave unchanged", so partial PATCH payloads map onto it directly.
type UpdateInput struct {
	Title       *string `json:"title"`
	Synopsis    *string `json:"synopsis"`
	Content     *string `json:"content"`
	FeaturedImg *string `json:"featuredImg"`
}

// List returns a page of visible blogs, newest first.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Blog, pagination.Meta, error) {
	blogs, total, err := service.repository.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return blogs, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns one visible blog with its author view.
func (service *Service) Get(ctx context.Context, id string) (*Blog, error) {
	return service.repository.FindByID(ctx, id)
}

// Create validates the input and persists a new blog owned by authorID.
// The URL slug is derived from the title.
func (service *Service) Create(ctx context.Context, authorID string, input CreateInput) (*Blog, error) {
	v := &validate.Validator{}
	err := v.
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldSynopsis, input.Synopsis).
		MaxLen(FieldSynopsis, input.Synopsis, MaxSynopsisLength).
		Required(FieldContent, input.Content).
		Err()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	blog := &Blog{
		ID:          uuidv7.Must(),
		AuthorID:    authorID,
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Synopsis:    input.Synopsis,
		Content:     input.Content,
		FeaturedImg: input.FeaturedImg,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := service.repository.Create(ctx, blog); err != nil {
		return nil, err
	}
	return service.repository.FindByID(ctx, blog.ID)
}

// Update applies a partial update to a blog the caller owns.
//
// The ownership and validation gates run before any side effect: a
// replacement image (file upload or URL) is only written to the store once
// both have passed, so a rejected request leaves no trace. A changed title
// re-derives the slug; a replaced featured image triggers a best-effort
// removal of the previous file.
func (service *Service) Update(ctx context.Context, userID, blogID string, input UpdateInput, image *ImageUpload) (*Blog, error) {
	blog, err := service.requireOwned(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.Synopsis != nil {
		v.Required(FieldSynopsis, *input.Synopsis).MaxLen(FieldSynopsis, *input.Synopsis, MaxSynopsisLength)
	}
	if input.Content != nil {
		v.Required(FieldContent, *input.Content)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	// All gates passed: an uploaded file may now be stored. It wins over a
	// featuredImg URL carried in the same request.
	savedImg := ""
	if image != nil {
		url, err := service.images.Save(ctx, image.File, image.Header)
		if err != nil {
			return nil, err
		}
		savedImg = url
		input.FeaturedImg = &url
	}

	previousImg := blog.FeaturedImg

	if input.Title != nil {
		blog.Title = *input.Title
		blog.Slug = slug.From(blog.Title)
	}
	blog.Synopsis = pointer.Fallback(input.Synopsis, blog.Synopsis)
	blog.Content = pointer.Fallback(input.Content, blog.Content)
	blog.FeaturedImg = pointer.Fallback(input.FeaturedImg, blog.FeaturedImg)
	blog.UpdatedAt = time.Now().UTC()

	if err := service.repository.Update(ctx, blog); err != nil {
		// Don't strand the file we just wrote.
		if savedImg != "" {
			service.removeImage(ctx, savedImg)
		}
		return nil, err
	}

	if input.FeaturedImg != nil && previousImg != "" && previousImg != blog.FeaturedImg {
		service.removeImage(ctx, previousImg)
	}

	return service.repository.FindByID(ctx, blog.ID)
}

// Delete soft-deletes a blog the caller owns. The row and its uploaded image
// are retained; the blog simply disappears from every read path.
func (service *Service) Delete(ctx context.Context, userID, blogID string) error {
	if _, err := service.requireOwned(ctx, userID, blogID); err != nil {
		return err
	}
	return service.repository.SoftDelete(ctx, blogID)
}

// requireOwned loads a visible blog and enforces ownership.
//
// An unknown or soft-deleted blog yields NotFound; a blog owned by another
// user yields Forbidden. The distinction is deliberate: existence of public
// blogs is not a secret, so a 403 leaks nothing the list endpoint would not.
func (service *Service) requireOwned(ctx context.Context, userID, blogID string) (*Blog, error) {
	blog, err := service.repository.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != userID {
		return nil, apperr.Forbidden("You do not have permission to modify this blog")
	}
	return blog, nil
}

// removeImage asks the image store to delete a replaced file, logging failures
// instead of failing the request.
func (service *Service) removeImage(ctx context.Context, url string) {
	if service.images == nil {
		return
	}
	if err := service.images.Remove(url); err != nil {
		ctxutil.GetLogger(ctx).Warn("failed to remove replaced featured image",
			"url", url, "error", err)
	}
}
