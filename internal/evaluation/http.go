package evaluation

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

type store interface {
	Create(ctx context.Context, e *Evaluation) error
	ListByEmail(ctx context.Context, email string) ([]Result, error)
}

type Handler struct {
	repo store
}

func NewHandler(repo store) *Handler {
	return &Handler{
		repo: repo,
	}
}

// Grade is a pointer so that an explicit 0 can be told apart from a missing value.
type createEvaluationRequest struct {
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	Subject      string `json:"subject"`
	Grade        *int   `json:"grade"`
	Level        string `json:"level"`
}

func (req createEvaluationRequest) complete() bool {
	return req.StudentName != "" && req.StudentEmail != "" && req.Subject != "" &&
		req.Grade != nil && req.Level != ""
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEvaluationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Warn("failed to decode evaluation request", "err", err)
		fieldsRequired(w, r)
		return
	}

	if !req.complete() {
		slog.Debug("evaluation request is missing fields", "request", req)
		fieldsRequired(w, r)
		return
	}

	e := &Evaluation{
		StudentName:  strings.TrimSpace(req.StudentName),
		StudentEmail: strings.TrimSpace(req.StudentEmail),
		Subject:      strings.TrimSpace(req.Subject),
		Grade:        *req.Grade,
		Level:        req.Level,
	}
	if err := h.repo.Create(r.Context(), e); err != nil {
		slog.Error("failed to create evaluation", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, render.M{"message": "حدث خطأ أثناء الحفظ."})
		return
	}

	slog.Info("evaluation created", "id", e.ID)
	render.JSON(w, r, render.M{
		"message":    "تم حفظ التقييم بنجاح ✅",
		"evaluation": e,
	})
}

// fieldsRequired also answers bodies that fail to decode: a wrongly typed
// grade leaves a zero behind in the request.
func fieldsRequired(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, render.M{"message": "جميع الحقول مطلوبة"})
}

func (h *Handler) ListForStudent(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("student_email")
	if email == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, render.M{"error": "student_email query parameter is required"})
		return
	}

	results, err := h.repo.ListByEmail(r.Context(), strings.TrimSpace(email))
	if err != nil {
		slog.Error("failed to get evaluations", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, render.M{"error": "Error fetching evaluations."})
		return
	}
	render.JSON(w, r, results)
}
