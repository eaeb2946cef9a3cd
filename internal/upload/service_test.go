// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package upload_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/upload"
)

// newUploadRequest builds a multipart request carrying one file part.
func newUploadRequest(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(upload.FieldFile, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest("POST", "/api/upload", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := request.FormFile(upload.FieldFile)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return file, header
}

func newTestService(t *testing.T) *upload.Service {
	t.Helper()
	service, err := upload.NewService(t.TempDir())
	require.NoError(t, err)
	return service
}

/*
TestService_Save verifies storage, naming, and the returned public URL.
*/
func TestService_Save(t *testing.T) {
	service := newTestService(t)
	file, header := newUploadRequest(t, "My Cover Photo.PNG", []byte("fake-png-bytes"))

	url, err := service.Save(context.Background(), file, header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, upload.PublicPrefix))
	assert.True(t, strings.HasSuffix(url, "-my-cover-photo.png"), "url %q", url)

	// The file is on disk with the uploaded content.
	name := strings.TrimPrefix(url, upload.PublicPrefix)
	stored, err := os.ReadFile(filepath.Join(service.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png-bytes"), stored)
}

/*
TestService_Save_UniqueNames verifies that identical uploads never collide.
*/
func TestService_Save_UniqueNames(t *testing.T) {
	service := newTestService(t)

	fileA, headerA := newUploadRequest(t, "cover.png", []byte("a"))
	urlA, err := service.Save(context.Background(), fileA, headerA)
	require.NoError(t, err)

	fileB, headerB := newUploadRequest(t, "cover.png", []byte("b"))
	urlB, err := service.Save(context.Background(), fileB, headerB)
	require.NoError(t, err)

	assert.NotEqual(t, urlA, urlB)
}

/*
TestService_Save_RejectedExtension verifies the image allowlist.
*/
func TestService_Save_RejectedExtension(t *testing.T) {
	service := newTestService(t)

	for _, filename := range []string{"script.sh", "page.html", "archive.zip", "noextension"} {
		file, header := newUploadRequest(t, filename, []byte("payload"))

		_, err := service.Save(context.Background(), file, header)
		require.Error(t, err, "filename %q", filename)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	}
}

/*
TestService_Save_TooLarge verifies the size cap using the declared header
size.
*/
func TestService_Save_TooLarge(t *testing.T) {
	service := newTestService(t)

	file, header := newUploadRequest(t, "big.png", []byte("tiny"))
	header.Size = upload.MaxUploadSize + 1

	_, err := service.Save(context.Background(), file, header)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Remove verifies deletion by public URL and tolerance of unknown
files.
*/
func TestService_Remove(t *testing.T) {
	service := newTestService(t)

	file, header := newUploadRequest(t, "cover.png", []byte("bytes"))
	url, err := service.Save(context.Background(), file, header)
	require.NoError(t, err)

	require.NoError(t, service.Remove(url))

	name := strings.TrimPrefix(url, upload.PublicPrefix)
	_, err = os.Stat(filepath.Join(service.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is not an error.
	assert.NoError(t, service.Remove(url))
}

/*
TestService_Remove_RejectsForeignURLs verifies that only upload URLs are
accepted.
*/
func TestService_Remove_RejectsForeignURLs(t *testing.T) {
	service := newTestService(t)

	assert.Error(t, service.Remove("/etc/passwd"))
	assert.Error(t, service.Remove("https://example.com/uploads/x.png"))
}
