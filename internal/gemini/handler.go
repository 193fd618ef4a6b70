package gemini

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

type Handler struct {
	gen generator
}

func NewHandler(gen generator) *Handler {
	return &Handler{gen: gen}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		slog.Warn("failed to decode chat request", "err", err)
	}
	if err != nil || req.Message == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, render.M{"error": "الرسالة فارغة!"})
		return
	}

	reply, err := h.gen.Generate(r.Context(), req.Message)
	if err != nil {
		slog.Error("gemini request failed", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, render.M{"error": "حدث خطأ أثناء الاتصال بـ Gemini API"})
		return
	}

	render.JSON(w, r, render.M{"reply": reply})
}
