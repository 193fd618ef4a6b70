package reviewcourse

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"eduportal/internal/storage"
	"eduportal/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type store interface {
	Create(ctx context.Context, c *ReviewCourse) error
	List(ctx context.Context) ([]ReviewCourse, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type files interface {
	Save(c upload.Category, file multipart.File, header *multipart.FileHeader) (string, error)
	Discard(publicPath string)
}

type Handler struct {
	repo  store
	files files
}

func NewHandler(repo store, files files) *Handler {
	return &Handler{
		repo:  repo,
		files: files,
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("video")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			slog.Warn("failed to read video upload", "err", err)
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, render.M{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	videoPath, err := h.files.Save(upload.ReviewCourses, file, header)
	if err != nil {
		slog.Error("failed to store video", "err", err)
		serverError(w, r)
		return
	}

	c := &ReviewCourse{
		Title:     r.FormValue("title"),
		VideoPath: videoPath,
	}
	if err := h.repo.Create(r.Context(), c); err != nil {
		slog.Error("failed to create review course", "err", err)
		h.files.Discard(videoPath)
		serverError(w, r)
		return
	}

	render.JSON(w, r, render.M{
		"message":       "✅ Video uploaded successfully!",
		"review_course": c,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list review courses", "err", err)
		serverError(w, r)
		return
	}
	render.JSON(w, r, list)
}

// Delete answers as soon as the row is gone; the video file is removed in
// the background.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		notFound(w, r)
		return
	}

	videoPath, err := h.repo.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to delete review course", "id", id, "err", err)
		serverError(w, r)
		return
	}

	go h.files.Discard(videoPath)

	render.JSON(w, r, render.M{
		"message":    "✅ Video deleted successfully!",
		"video_path": videoPath,
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, render.M{"error": "❌ Video not found"})
}

func serverError(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, render.M{"error": "Server error"})
}
