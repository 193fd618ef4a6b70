package assignment

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
	Create(ctx context.Context, a *Assignment) error
	List(ctx context.Context) ([]Assignment, error)
	FileURL(ctx context.Context, id int64) (string, error)
	Delete(ctx context.Context, id int64) error
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
	file, header, err := r.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			slog.Warn("failed to read assignment upload", "err", err)
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, render.M{"error": "File upload required"})
		return
	}
	defer file.Close()

	fileURL, err := h.files.Save(upload.Assignments, file, header)
	if err != nil {
		slog.Error("failed to store assignment file", "err", err)
		serverError(w, r)
		return
	}

	a := &Assignment{
		Title:   r.FormValue("title"),
		FileURL: fileURL,
	}
	if err := h.repo.Create(r.Context(), a); err != nil {
		slog.Error("failed to create assignment", "err", err)
		h.files.Discard(fileURL)
		serverError(w, r)
		return
	}

	render.JSON(w, r, render.M{
		"message":    "Assignment uploaded successfully!",
		"assignment": a,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list assignments", "err", err)
		serverError(w, r)
		return
	}
	render.JSON(w, r, list)
}

// Delete removes the row first; the file is cleaned up afterwards and a
// failure there does not change the response.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		notFound(w, r)
		return
	}

	fileURL, err := h.repo.FileURL(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get assignment", "id", id, "err", err)
		serverError(w, r)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			notFound(w, r)
			return
		}
		slog.Error("failed to delete assignment", "id", id, "err", err)
		serverError(w, r)
		return
	}

	h.files.Discard(fileURL)

	render.JSON(w, r, render.M{"message": "Assignment deleted successfully"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, render.M{"error": "Assignment not found"})
}

func serverError(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, render.M{"error": "Server error"})
}
