package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix under which the upload root is served.
const PublicPrefix = "/uploads"

type Category string

const (
	Assignments   Category = "assignments"
	Submissions   Category = "submissions"
	ReviewCourses Category = "review_courses"
)

var Categories = []Category{Assignments, Submissions, ReviewCourses}

var ErrOutsideRoot = errors.New("path outside upload root")

// Store writes uploaded files under Root/<category>/ and hands back the
// public path they are served from.
type Store struct {
	Root string
	now  func() time.Time
	id   func() string
}

func NewStore(root string) *Store {
	return &Store{
		Root: root,
		now:  time.Now,
		id:   func() string { return uuid.NewString()[:8] },
	}
}

// Init creates the upload root and one directory per category.
func (s *Store) Init() error {
	for _, c := range Categories {
		dir := filepath.Join(s.Root, string(c))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		slog.Debug("upload directory ready", "path", dir)
	}
	return nil
}

// Save copies the multipart file into the category directory and returns
// its public path.
func (s *Store) Save(c Category, file multipart.File, header *multipart.FileHeader) (string, error) {
	name := s.filename(header.Filename)
	dst := filepath.Join(s.Root, string(c), name)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", dst, err)
	}

	return path.Join(PublicPrefix, string(c), name), nil
}

// Remove deletes the file behind a public path.
func (s *Store) Remove(publicPath string) error {
	p, err := s.Resolve(publicPath)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

// Discard is best-effort cleanup: one removal attempt, failures are logged.
func (s *Store) Discard(publicPath string) {
	if err := s.Remove(publicPath); err != nil {
		slog.Error("failed to delete file from disk", "path", publicPath, "err", err)
		return
	}
	slog.Debug("file deleted", "path", publicPath)
}

// Resolve maps a public path such as /uploads/assignments/x.pdf to its
// location on disk.
func (s *Store) Resolve(publicPath string) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+publicPath), PublicPrefix+"/")
	if rel == "" || strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, publicPath)
	}
	return filepath.Join(s.Root, filepath.FromSlash(rel)), nil
}

// filename is <unix millis>-<8 hex><ext>, with the original extension
// applied once.
func (s *Store) filename(original string) string {
	ext := filepath.Ext(filepath.Base(original))
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + s.id() + ext
}
