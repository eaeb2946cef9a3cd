// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package blog_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogit-app/blogit/internal/blog"
	"github.com/blogit-app/blogit/internal/platform/constants"
	"github.com/blogit-app/blogit/internal/platform/ctxutil"
	"github.com/blogit-app/blogit/internal/platform/respond"
	"github.com/blogit-app/blogit/internal/platform/sec"
)

func newTestHandler() (http.Handler, *fakeRepository, *fakeImageStore) {
	repository := newFakeRepository()
	images := &fakeImageStore{}
	service := blog.NewService(repository, images)
	return blog.NewHandler(service).Routes(), repository, images
}

// asUser injects verified token claims, standing in for the auth middleware.
func asUser(request *http.Request, userID string) *http.Request {
	ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID, Username: "bob"})
	return request.WithContext(ctx)
}

func decodeBlog(t *testing.T, body *bytes.Buffer) blog.Blog {
	t.Helper()
	var decoded blog.Blog
	require.NoError(t, json.NewDecoder(body).Decode(&decoded))
	return decoded
}

/*
TestHandler_Create_Anonymous verifies that blog creation requires a session.
*/
func TestHandler_Create_Anonymous(t *testing.T) {
	handler, _, _ := newTestHandler()

	body := strings.NewReader(`{"title":"T","synopsis":"S","content":"C"}`)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_CreateAndGet verifies the JSON create flow and the public read.
*/
func TestHandler_CreateAndGet(t *testing.T) {
	handler, _, _ := newTestHandler()

	payload := `{"title":"Hello World","synopsis":"Short","content":"Body","featuredImg":"/uploads/a.png"}`
	request := asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "author-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBlog(t, recorder.Body)
	assert.Equal(t, "hello-world", created.Slug)
	assert.Equal(t, "author-1", created.AuthorID)

	// Anonymous read works.
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.ID, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	fetched := decodeBlog(t, recorder.Body)
	assert.Equal(t, "Hello World", fetched.Title)
}

/*
TestHandler_Update_Multipart verifies the multipart PATCH path: text fields
plus a replacement featured image.
*/
func TestHandler_Update_Multipart(t *testing.T) {
	handler, _, images := newTestHandler()

	// Seed a blog via the JSON endpoint.
	payload := `{"title":"Original","synopsis":"Short","content":"Body","featuredImg":"/uploads/old.png"}`
	request := asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "author-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBlog(t, recorder.Body)

	// Multipart PATCH: new title + new image file.
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField(blog.FieldTitle, "Patched Title"))
	part, err := form.CreateFormFile(blog.FieldFeaturedImg, "new.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("img-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request = asUser(httptest.NewRequest(http.MethodPatch, "/"+created.ID, &body), "author-1")
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeBlog(t, recorder.Body)

	assert.Equal(t, "Patched Title", updated.Title)
	assert.Equal(t, "patched-title", updated.Slug)
	assert.Equal(t, "/uploads/new.png", updated.FeaturedImg)
	assert.Equal(t, "Short", updated.Synopsis) // untouched field survives
	assert.Equal(t, 1, images.saves)
	assert.Equal(t, []string{"/uploads/old.png"}, images.removed)
}

/*
TestHandler_Update_MultipartImageURL verifies that a featuredImg text field in
a multipart form is honored when no file part accompanies it.
*/
func TestHandler_Update_MultipartImageURL(t *testing.T) {
	handler, _, images := newTestHandler()

	payload := `{"title":"Original","synopsis":"Short","content":"Body","featuredImg":"/uploads/old.png"}`
	request := asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "author-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBlog(t, recorder.Body)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField(blog.FieldFeaturedImg, "/uploads/linked.png"))
	require.NoError(t, form.Close())

	request = asUser(httptest.NewRequest(http.MethodPatch, "/"+created.ID, &body), "author-1")
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeBlog(t, recorder.Body)

	assert.Equal(t, "/uploads/linked.png", updated.FeaturedImg)
	assert.Zero(t, images.saves)
}

/*
TestHandler_Update_MultipartForbiddenStoresNothing verifies that a
foreign-owned multipart PATCH carrying a replacement image is rejected with
403 before the file touches the image store.
*/
func TestHandler_Update_MultipartForbiddenStoresNothing(t *testing.T) {
	handler, _, images := newTestHandler()

	payload := `{"title":"Mine","synopsis":"S","content":"C"}`
	request := asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "author-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBlog(t, recorder.Body)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField(blog.FieldTitle, "Hijacked"))
	part, err := form.CreateFormFile(blog.FieldFeaturedImg, "intruder.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("img-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request = asUser(httptest.NewRequest(http.MethodPatch, "/"+created.ID, &body), "intruder")
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Zero(t, images.saves)
}

/*
TestHandler_Update_Forbidden verifies the ownership gate returns 403 over
HTTP for a foreign-owned blog.
*/
func TestHandler_Update_Forbidden(t *testing.T) {
	handler, _, _ := newTestHandler()

	payload := `{"title":"Mine","synopsis":"S","content":"C"}`
	request := asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "author-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBlog(t, recorder.Body)

	request = asUser(httptest.NewRequest(http.MethodPatch, "/"+created.ID,
		strings.NewReader(`{"title":"Hijacked"}`)), "intruder")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, "FORBIDDEN", envelope.Code)
}

/*
TestHandler_Delete verifies soft deletion over HTTP and the disappearance of
the blog from subsequent reads.
*/
func TestHandler_Delete(t *testing.T) {
	handler, repository, _ := newTestHandler()

	payload := `{"title":"Doomed","synopsis":"S","content":"C"}`
	request := asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "author-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBlog(t, recorder.Body)

	request = asUser(httptest.NewRequest(http.MethodDelete, "/"+created.ID, nil), "author-1")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Row retained, flag set.
	assert.True(t, repository.blogs[created.ID].IsDeleted)

	// Public read now 404s.
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_List verifies the public listing: a bare JSON array with the
pagination counts in response headers.
*/
func TestHandler_List(t *testing.T) {
	handler, _, _ := newTestHandler()

	for _, title := range []string{"First", "Second"} {
		payload := `{"title":"` + title + `","synopsis":"S","content":"C"}`
		request := asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "author-1")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?page=1&limit=10", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var blogs []blog.Blog
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&blogs))

	require.Len(t, blogs, 2)
	assert.Equal(t, "Second", blogs[0].Title) // newest first
	assert.Equal(t, "2", recorder.Header().Get(constants.HeaderXTotalCount))
	assert.Equal(t, "1", recorder.Header().Get(constants.HeaderXTotalPages))
	assert.Equal(t, "1", recorder.Header().Get(constants.HeaderXPage))
}
