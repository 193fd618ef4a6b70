package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eduportal/internal/storage"

	"github.com/go-chi/render"
)

type store interface {
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, u *User) error
	ByEmail(ctx context.Context, email string) (*User, error)
}

type Handler struct {
	repo         store
	tokens       *Tokens
	teacherEmail string
}

func NewHandler(repo store, tokens *Tokens, teacherEmail string) *Handler {
	return &Handler{
		repo:         repo,
		tokens:       tokens,
		teacherEmail: teacherEmail,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// roleFor grants the teacher role to the configured teacher email only.
func (h *Handler) roleFor(email string) string {
	if email == h.teacherEmail {
		return RoleTeacher
	}
	return RoleStudent
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Warn("failed to decode register request", "err", err)
		fillAllFields(w, r)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" {
		fillAllFields(w, r)
		return
	}

	exists, err := h.repo.Exists(r.Context(), req.Username, req.Email)
	if err != nil {
		slog.Error("failed to check existing user", "err", err)
		registerFailed(w, r)
		return
	}
	if exists {
		conflict(w, r)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "err", err)
		registerFailed(w, r)
		return
	}

	u := &User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     h.roleFor(req.Email),
		Name:     req.Name,
	}
	// The unique constraints catch a concurrent registration that slipped
	// past Exists.
	if err := h.repo.Create(r.Context(), u); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			conflict(w, r)
			return
		}
		slog.Error("failed to create user", "err", err)
		registerFailed(w, r)
		return
	}

	token, err := h.tokens.Issue(u.ID, u.Role)
	if err != nil {
		slog.Error("failed to issue token", "id", u.ID, "err", err)
		registerFailed(w, r)
		return
	}

	slog.Info("user registered", "id", u.ID, "role", u.Role)
	render.JSON(w, r, render.M{
		"message": "User registered",
		"token":   token,
		"user":    render.M{"id": u.ID, "role": u.Role},
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Warn("failed to decode login request", "err", err)
		loginFailed(w, r, "Email and password are required.")
		return
	}

	if req.Email == "" || req.Password == "" {
		loginFailed(w, r, "Email and password are required.")
		return
	}

	u, err := h.repo.ByEmail(r.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		loginFailed(w, r, "User not found.")
		return
	}
	if err != nil {
		slog.Error("login error", "err", err)
		loginError(w, r)
		return
	}

	ok, err := CheckPassword(u.Password, req.Password)
	if err != nil {
		slog.Error("login error", "id", u.ID, "err", err)
		loginError(w, r)
		return
	}
	if !ok {
		loginFailed(w, r, "Incorrect password.")
		return
	}

	if req.Email == h.teacherEmail && u.Role != RoleTeacher {
		loginFailed(w, r, "Only the specified teacher email can login as teacher.")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, loginResponse{
		Message: "Login successful",
		UserID:  u.ID,
		Role:    u.Role,
		Name:    u.Name,
		Email:   u.Email,
	})
}

func fillAllFields(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, render.M{"error": "Please fill in all fields"})
}

func conflict(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusConflict)
	render.JSON(w, r, render.M{"error": "Username or Email already exists"})
}

func registerFailed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, render.M{"error": "Server error"})
}

func loginFailed(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, render.M{"message": msg})
}

func loginError(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, render.M{"message": "Server error during login."})
}
