// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

/*
Package upload implements image storage for user-provided media.

Files land on the local filesystem under a configured directory and are
served back under the /uploads/ public path. Stored names are generated
server-side, so a client can never influence the on-disk path.
*/
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/pkg/slug"
	"github.com/blogit-app/blogit/pkg/uuidv7"
)

const (
	// PublicPrefix is the URL path under which stored files are served.
	PublicPrefix = "/uploads/"

	// MaxUploadSize caps a single image upload.
	MaxUploadSize = 5 << 20 // 5 MiB
)

// allowedExtensions is the image extension allowlist, lowercase.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Service stores uploaded images on the local filesystem.
type Service struct {
	directory string
}

// NewService creates the upload service and ensures the storage directory
// exists.
func NewService(directory string) (*Service, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %q: %w", directory, err)
	}
	return &Service{directory: directory}, nil
}

// Save validates and persists one uploaded image, returning its public URL.
//
// The stored name is "<uuidv7>-<slugified original base>.<ext>": unique,
// sortable by upload time, and free of any client-controlled path segments.
func (service *Service) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxUploadSize {
		return "", apperr.ValidationError(fmt.Sprintf("Image exceeds the maximum size of %d MB", MaxUploadSize>>20))
	}

	extension := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[extension] {
		return "", apperr.ValidationError("Only JPG, PNG, GIF, and WebP images are accepted")
	}

	base := slug.From(strings.TrimSuffix(filepath.Base(header.Filename), extension))
	if base == "" {
		base = "image"
	}
	name := uuidv7.Must() + "-" + base + extension

	destination, err := os.Create(filepath.Join(service.directory, name))
	if err != nil {
		return "", apperr.Internal(err)
	}
	defer destination.Close()

	// Size is re-checked while copying: the header value is client-supplied.
	written, err := io.Copy(destination, io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return "", apperr.Internal(err)
	}
	if written > MaxUploadSize {
		_ = os.Remove(destination.Name())
		return "", apperr.ValidationError(fmt.Sprintf("Image exceeds the maximum size of %d MB", MaxUploadSize>>20))
	}

	return PublicPrefix + name, nil
}

// Remove deletes a stored file by its public URL. Unknown files are not an
// error; URLs outside the public prefix are rejected.
func (service *Service) Remove(url string) error {
	if !strings.HasPrefix(url, PublicPrefix) {
		return fmt.Errorf("not an upload URL: %q", url)
	}

	// Base() strips any traversal segments a stored URL could carry.
	name := path.Base(strings.TrimPrefix(url, PublicPrefix))
	if name == "." || name == "/" {
		return fmt.Errorf("not an upload URL: %q", url)
	}

	err := os.Remove(filepath.Join(service.directory, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Dir returns the storage directory, used to mount the static file server.
func (service *Service) Dir() string {
	return service.directory
}
