package evaluation

import (
	"context"
	"fmt"

	"eduportal/internal/storage"
)

type Evaluation struct {
	ID           int64  `json:"id"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	Subject      string `json:"subject"`
	Grade        int    `json:"grade"`
	Level        string `json:"level"`
}

// Result is what a student sees of an evaluation.
type Result struct {
	Subject string `json:"subject"`
	Grade   int    `json:"grade"`
	Level   string `json:"level"`
}

type Repository struct {
	db storage.DB
}

func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *Evaluation) error {
	const query = `
	INSERT INTO student_evaluations (student_name, student_email, subject, grade, level)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;`

	row := r.db.QueryRow(ctx, query, e.StudentName, e.StudentEmail, e.Subject, e.Grade, e.Level)
	if err := row.Scan(&e.ID); err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return nil
}

func (r *Repository) ListByEmail(ctx context.Context, email string) ([]Result, error) {
	const query = `
	SELECT subject, grade, level
	FROM student_evaluations
	WHERE student_email = $1;`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluations: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.Subject, &res.Grade, &res.Level); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get evaluations: %w", err)
	}
	return results, nil
}
