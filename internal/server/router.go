package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eduportal/internal/assignment"
	"eduportal/internal/auth"
	"eduportal/internal/evaluation"
	"eduportal/internal/gemini"
	"eduportal/internal/metrics"
	"eduportal/internal/reviewcourse"
	"eduportal/internal/storage"
	"eduportal/internal/submission"
	"eduportal/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

type Database interface {
	storage.DB
	Ping(ctx context.Context) error
}

type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

type Deps struct {
	DB             Database
	Files          *upload.Store
	Generator      Generator
	Tokens         *auth.Tokens
	Metrics        *metrics.Metrics
	TeacherEmail   string
	MaxUploadBytes int64
}

func NewRouter(d Deps) http.Handler {
	assignments := assignment.NewHandler(assignment.NewRepository(d.DB), d.Files)
	submissions := submission.NewHandler(submission.NewRepository(d.DB), d.Files)
	videos := reviewcourse.NewHandler(reviewcourse.NewRepository(d.DB), d.Files)
	evaluations := evaluation.NewHandler(evaluation.NewRepository(d.DB))
	users := auth.NewHandler(auth.NewRepository(d.DB), d.Tokens, d.TeacherEmail)
	chat := gemini.NewHandler(d.Generator)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(d.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/healthz", health(d.DB))
	r.Handle("/metrics", d.Metrics.Handler())

	limitBody := middleware.RequestSize(d.MaxUploadBytes)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.With(limitBody).Post("/assignments/upload", assignments.Upload)
		r.Get("/assignments", assignments.List)
		r.Delete("/assignments/delete/{id}", assignments.Delete)

		r.With(limitBody).Post("/submissions", submissions.Create)
		r.Get("/submissions", submissions.List)

		r.With(limitBody).Post("/review-courses/upload", videos.Upload)
		r.Get("/review-courses", videos.List)
		r.Delete("/review-courses/{id}", videos.Delete)

		r.Post("/gemini-chat", chat.Chat)

		r.Post("/admin/evaluations", evaluations.Create)
		r.Get("/student/evaluations", evaluations.ListForStudent)

		r.Post("/auth/register", users.Register)
		r.Post("/auth/login", users.Login)
	})

	r.Handle(upload.PublicPrefix+"/*", http.StripPrefix(upload.PublicPrefix+"/", staticFiles(d.Files.Root)))

	return r
}

// staticFiles serves the upload root without directory listings.
func staticFiles(root string) http.Handler {
	fs := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

func health(db Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slog.Error("health check failed", "err", err)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, render.M{"status": "unavailable"})
			return
		}
		render.JSON(w, r, render.M{"status": "ok"})
	}
}
