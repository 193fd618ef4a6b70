package submission

import (
	"context"
	"fmt"

	"eduportal/internal/storage"
)

// Submission is a student's uploaded answer. UserName and UserEmail are
// free text as typed by the student.
type Submission struct {
	ID        int64  `json:"id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	FileURL   string `json:"file_url"`
}

type Repository struct {
	db storage.DB
}

func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, s *Submission) error {
	const query = `
	INSERT INTO submissions (user_name, user_email, file_url)
	VALUES ($1, $2, $3)
	RETURNING id;`

	if err := r.db.QueryRow(ctx, query, s.UserName, s.UserEmail, s.FileURL).Scan(&s.ID); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]Submission, error) {
	const query = `SELECT id, user_name, user_email, file_url FROM submissions ORDER BY id DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	list := []Submission{}
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.UserName, &s.UserEmail, &s.FileURL); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return list, nil
}
