package assignment

import (
	"context"
	"testing"

	"eduportal/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO assignments`).
		WithArgs("Week 1", "/uploads/assignments/1.pdf").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	a := &Assignment{Title: "Week 1", FileURL: "/uploads/assignments/1.pdf"}
	require.NoError(t, NewRepository(mock).Create(context.Background(), a))
	assert.Equal(t, int64(42), a.ID)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, title, file_url FROM assignments ORDER BY id DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "file_url"}).
			AddRow(int64(2), "b", "/uploads/assignments/b").
			AddRow(int64(1), "a", "/uploads/assignments/a"))

	list, err := NewRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)
}

func TestRepositoryListEmpty(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM assignments`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "file_url"}))

	list, err := NewRepository(mock).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRepositoryFileURLNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT file_url FROM assignments WHERE id`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewRepository(mock).FileURL(context.Background(), 9)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM assignments WHERE id`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM assignments WHERE id`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepository(mock)
	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), storage.ErrNotFound)
}
