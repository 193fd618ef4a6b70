package auth

import (
	"context"
	"fmt"

	"eduportal/internal/storage"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type Repository struct {
	db storage.DB
}

func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether a user already holds the username or the email.
func (r *Repository) Exists(ctx context.Context, username, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2);`

	var exists bool
	if err := r.db.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// Create inserts u and fills in its id. A duplicate username or email
// surfaces as storage.ErrConflict.
func (r *Repository) Create(ctx context.Context, u *User) error {
	const query = `
	INSERT INTO users (username, email, password, role, name)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;`

	row := r.db.QueryRow(ctx, query, u.Username, u.Email, u.Password, u.Role, u.Name)
	if err := row.Scan(&u.ID); err != nil {
		return fmt.Errorf("create user: %w", storage.Classify(err))
	}
	return nil
}

func (r *Repository) ByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
	SELECT id, username, email, password, role, name
	FROM users
	WHERE email = $1;`

	var u User
	row := r.db.QueryRow(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.Name); err != nil {
		return nil, fmt.Errorf("get user by email: %w", storage.Classify(err))
	}
	return &u, nil
}
