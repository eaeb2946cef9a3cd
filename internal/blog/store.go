// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package blog

import "context"

// Repository defines persistence for blogs.
//
// Soft deletion is an implementation detail of this interface: every read
// excludes logically deleted rows, so callers never see a deleted blog and
// never need to consult the flag themselves.
type Repository interface {
	// List returns visible blogs newest-first along with the total count of
	// visible rows for pagination metadata.
	List(ctx context.Context, limit, offset int) ([]*Blog, int, error)

	// ListByAuthor returns all visible blogs owned by one user, newest-first.
	ListByAuthor(ctx context.Context, authorID string) ([]*Blog, error)

	// FindByID returns a visible blog with its author view attached.
	// A soft-deleted or unknown id yields a NotFound error.
	FindByID(ctx context.Context, id string) (*Blog, error)

	// Create persists a new blog.
	Create(ctx context.Context, blog *Blog) error

	// Update rewrites the mutable columns of a visible blog.
	Update(ctx context.Context, blog *Blog) error

	// SoftDelete flips the deletion flag on a visible blog. Deleting an
	// already-deleted blog yields a NotFound error.
	SoftDelete(ctx context.Context, id string) error
}
