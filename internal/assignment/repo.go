package assignment

import (
	"context"
	"fmt"

	"eduportal/internal/storage"
)

type Assignment struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	FileURL string `json:"file_url"`
}

type Repository struct {
	db storage.DB
}

func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, a *Assignment) error {
	const query = `
	INSERT INTO assignments (title, file_url)
	VALUES ($1, $2)
	RETURNING id;`

	if err := r.db.QueryRow(ctx, query, a.Title, a.FileURL).Scan(&a.ID); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]Assignment, error) {
	const query = `SELECT id, title, file_url FROM assignments ORDER BY id DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	list := []Assignment{}
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.FileURL); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return list, nil
}

func (r *Repository) FileURL(ctx context.Context, id int64) (string, error) {
	const query = `SELECT file_url FROM assignments WHERE id = $1;`

	var url string
	if err := r.db.QueryRow(ctx, query, id).Scan(&url); err != nil {
		return "", fmt.Errorf("get assignment %d: %w", id, storage.Classify(err))
	}
	return url, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete assignment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete assignment %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
