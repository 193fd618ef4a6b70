package reviewcourse

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduportal/internal/storage"
	"eduportal/internal/upload"
	"eduportal/internal/upload/uploadtest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rows []ReviewCourse
}

func (f *fakeStore) Create(_ context.Context, c *ReviewCourse) error {
	c.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeStore) List(context.Context) ([]ReviewCourse, error) {
	list := []ReviewCourse{}
	for i := len(f.rows) - 1; i >= 0; i-- {
		list = append(list, f.rows[i])
	}
	return list, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (string, error) {
	for i, c := range f.rows {
		if c.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return c.VideoPath, nil
		}
	}
	return "", fmt.Errorf("delete review course %d: %w", id, storage.ErrNotFound)
}

type fakeFiles struct {
	discarded chan string
}

func (f *fakeFiles) Save(c upload.Category, _ multipart.File, h *multipart.FileHeader) (string, error) {
	return "/uploads/" + string(c) + "/" + h.Filename, nil
}

func (f *fakeFiles) Discard(publicPath string) {
	f.discarded <- publicPath
}

func setup(t *testing.T) (*fakeStore, *fakeFiles, http.Handler) {
	t.Helper()
	repo := &fakeStore{}
	files := &fakeFiles{discarded: make(chan string, 1)}
	h := NewHandler(repo, files)

	r := chi.NewRouter()
	r.Post("/api/review-courses/upload", h.Upload)
	r.Get("/api/review-courses", h.List)
	r.Delete("/api/review-courses/{id}", h.Delete)
	return repo, files, r
}

func TestUploadRequiresVideoField(t *testing.T) {
	repo, _, r := setup(t)

	// A file under the wrong field name does not count.
	req := uploadtest.NewRequest(t, http.MethodPost, "/api/review-courses/upload",
		map[string]string{"title": "x"},
		&uploadtest.File{Field: "file", Name: "a.mp4", Content: []byte("v")})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, rec.Body.String())
	assert.Empty(t, repo.rows)
}

func TestUploadAndList(t *testing.T) {
	repo, _, r := setup(t)

	for _, name := range []string{"one.mp4", "two.mp4"} {
		req := uploadtest.NewRequest(t, http.MethodPost, "/api/review-courses/upload",
			map[string]string{"title": name},
			&uploadtest.File{Field: "video", Name: name, Content: []byte("v")})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Video uploaded successfully!")
	}
	require.Len(t, repo.rows, 2)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/review-courses", nil))
	assert.JSONEq(t, `[
		{"id":2,"title":"two.mp4","video_path":"/uploads/review_courses/two.mp4"},
		{"id":1,"title":"one.mp4","video_path":"/uploads/review_courses/one.mp4"}
	]`, rec.Body.String())
}

func TestDeleteMissing(t *testing.T) {
	_, files, r := setup(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/review-courses/12", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"❌ Video not found"}`, rec.Body.String())
	select {
	case p := <-files.discarded:
		t.Fatalf("unexpected cleanup of %s", p)
	default:
	}
}

func TestDeleteCleansUpInBackground(t *testing.T) {
	repo, files, r := setup(t)
	repo.rows = []ReviewCourse{{ID: 3, Title: "t", VideoPath: "/uploads/review_courses/3.mp4"}}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/review-courses/3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"✅ Video deleted successfully!","video_path":"/uploads/review_courses/3.mp4"}`, rec.Body.String())
	assert.Empty(t, repo.rows)

	select {
	case p := <-files.discarded:
		assert.Equal(t, "/uploads/review_courses/3.mp4", p)
	case <-time.After(time.Second):
		t.Fatal("video file was not cleaned up")
	}
}
