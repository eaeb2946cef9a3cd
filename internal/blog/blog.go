// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

/*
Package blog implements the blog post domain: authoring, discovery, and the
ownership rules that guard every mutation.

# Architecture

  - Entities: Blog, AuthorRef (denormalized author view).
  - Service: Validation, slug derivation, and the single ownership predicate
    used by every mutating operation.
  - Repository: Soft-delete aware persistence. Every read goes through a
    repository method that always filters the is_deleted flag, so the
    invariant cannot be forgotten at a new call site.
*/
package blog

import "time"

// # Domain Entities

// Blog represents a single post owned by exactly one user.
//
// Deletion is logical: the is_deleted flag flips and the row is retained.
// JSON casing follows the public API contract consumed by the SPA (camelCase).
type Blog struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"authorId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Synopsis    string     `json:"synopsis"`
	Content     string     `json:"content,omitempty"`
	FeaturedImg string     `json:"featuredImg"`
	IsDeleted   bool       `json:"-"` // soft-delete tracker, never serialized
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Author      *AuthorRef `json:"author,omitempty"`
}

// AuthorRef is the denormalized author view embedded in blog responses:
// a display name plus the uppercase-initials avatar (e.g. "Bob Stone" → "BS").
type AuthorRef struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// # Field Identifiers

// Global field names for validation in the blog domain.
const (
	FieldTitle       = "title"
	FieldSynopsis    = "synopsis"
	FieldContent     = "content"
	FieldFeaturedImg = "featuredImg"
)
