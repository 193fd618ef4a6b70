package submission

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"eduportal/internal/upload"

	"github.com/go-chi/render"
)

type store interface {
	Create(ctx context.Context, s *Submission) error
	List(ctx context.Context) ([]Submission, error)
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			slog.Warn("failed to read submission upload", "err", err)
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, render.M{"error": "File upload required"})
		return
	}
	defer file.Close()

	fileURL, err := h.files.Save(upload.Submissions, file, header)
	if err != nil {
		slog.Error("failed to store submission file", "err", err)
		serverError(w, r)
		return
	}

	s := &Submission{
		UserName:  r.FormValue("user_name"),
		UserEmail: r.FormValue("user_email"),
		FileURL:   fileURL,
	}
	if err := h.repo.Create(r.Context(), s); err != nil {
		slog.Error("failed to create submission", "err", err)
		h.files.Discard(fileURL)
		serverError(w, r)
		return
	}

	render.JSON(w, r, render.M{
		"message":    "Submission uploaded successfully",
		"submission": s,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list submissions", "err", err)
		serverError(w, r)
		return
	}
	render.JSON(w, r, list)
}

func serverError(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, render.M{"error": "Server error"})
}
