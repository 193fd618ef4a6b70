package reviewcourse

import (
	"context"
	"fmt"

	"eduportal/internal/storage"
)

// ReviewCourse is an uploaded video lecture.
type ReviewCourse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	VideoPath string `json:"video_path"`
}

type Repository struct {
	db storage.DB
}

func NewRepository(db storage.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *ReviewCourse) error {
	const query = `
	INSERT INTO review_courses (title, video_path)
	VALUES ($1, $2)
	RETURNING id;`

	if err := r.db.QueryRow(ctx, query, c.Title, c.VideoPath).Scan(&c.ID); err != nil {
		return fmt.Errorf("create review course: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]ReviewCourse, error) {
	const query = `SELECT id, title, video_path FROM review_courses ORDER BY id DESC;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list review courses: %w", err)
	}
	defer rows.Close()

	list := []ReviewCourse{}
	for rows.Next() {
		var c ReviewCourse
		if err := rows.Scan(&c.ID, &c.Title, &c.VideoPath); err != nil {
			return nil, fmt.Errorf("scan review course: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list review courses: %w", err)
	}
	return list, nil
}

// Delete removes the row and returns the video path it pointed at.
func (r *Repository) Delete(ctx context.Context, id int64) (string, error) {
	const query = `DELETE FROM review_courses WHERE id = $1 RETURNING video_path;`

	var path string
	if err := r.db.QueryRow(ctx, query, id).Scan(&path); err != nil {
		return "", fmt.Errorf("delete review course %d: %w", id, storage.Classify(err))
	}
	return path, nil
}
