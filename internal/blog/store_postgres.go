// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package blog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogit-app/blogit/internal/platform/dberr"
)

// blogColumns lists the blog columns in scan order, joined with the author
// name columns every read needs for the embedded author view.
const blogColumns = `b.id, b.author_id, b.title, b.slug, b.synopsis, b.content,
	b.featured_img, b.is_deleted, b.created_at, b.updated_at,
	u.first_name, u.last_name`

// PostgresRepository implements Repository backed by PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Postgres-backed blog repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Blog, int, error) {
	query := `
		SELECT ` + blogColumns + `, COUNT(*) OVER() AS total
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.is_deleted = FALSE
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Blog")
	}
	defer rows.Close()

	var (
		blogs []*Blog
		total int
	)
	for rows.Next() {
		blog, firstName, lastName, err := scanBlogRow(rows.Scan, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Blog")
		}
		blog.Author = newAuthorRef(firstName, lastName)
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Blog")
	}
	return blogs, total, nil
}

func (repository *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.author_id = $1 AND b.is_deleted = FALSE
		ORDER BY b.created_at DESC`

	rows, err := repository.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, "Blog")
	}
	defer rows.Close()

	var blogs []*Blog
	for rows.Next() {
		var (
			b                   Blog
			firstName, lastName string
		)
		err := rows.Scan(
			&b.ID, &b.AuthorID, &b.Title, &b.Slug, &b.Synopsis, &b.Content,
			&b.FeaturedImg, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt,
			&firstName, &lastName,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "Blog")
		}
		b.Author = newAuthorRef(firstName, lastName)
		blogs = append(blogs, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Blog")
	}
	return blogs, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1 AND b.is_deleted = FALSE`

	row := repository.pool.QueryRow(ctx, query, id)

	var (
		b                   Blog
		firstName, lastName string
	)
	err := row.Scan(
		&b.ID, &b.AuthorID, &b.Title, &b.Slug, &b.Synopsis, &b.Content,
		&b.FeaturedImg, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt,
		&firstName, &lastName,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Blog")
	}
	b.Author = newAuthorRef(firstName, lastName)
	return &b, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (id, author_id, title, slug, synopsis, content, featured_img, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := repository.pool.Exec(ctx, query,
		blog.ID, blog.AuthorID, blog.Title, blog.Slug, blog.Synopsis,
		blog.Content, blog.FeaturedImg, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Blog")
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, slug = $3, synopsis = $4, content = $5, featured_img = $6, updated_at = $7
		WHERE id = $1 AND is_deleted = FALSE`

	tag, err := repository.pool.Exec(ctx, query,
		blog.ID, blog.Title, blog.Slug, blog.Synopsis, blog.Content,
		blog.FeaturedImg, blog.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Blog")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Blog")
	}
	return nil
}

func (repository *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE blogs
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "Blog")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Blog")
	}
	return nil
}

// scanBlogRow scans one list row, including the trailing window-count column.
func scanBlogRow(scan func(dest ...any) error, total *int) (*Blog, string, string, error) {
	var (
		blog                Blog
		firstName, lastName string
	)
	err := scan(
		&blog.ID, &blog.AuthorID, &blog.Title, &blog.Slug, &blog.Synopsis,
		&blog.Content, &blog.FeaturedImg, &blog.IsDeleted, &blog.CreatedAt,
		&blog.UpdatedAt, &firstName, &lastName, total,
	)
	if err != nil {
		return nil, "", "", err
	}
	return &blog, firstName, lastName, nil
}

// newAuthorRef builds the denormalized author view from the joined name
// columns: full display name plus uppercase initials used as the avatar.
func newAuthorRef(firstName, lastName string) *AuthorRef {
	ref := &AuthorRef{
		Name: strings.TrimSpace(firstName + " " + lastName),
	}
	var initials strings.Builder
	for _, part := range []string{firstName, lastName} {
		if part == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(part)
		initials.WriteString(strings.ToUpper(string(r)))
	}
	ref.Avatar = initials.String()
	return ref
}
