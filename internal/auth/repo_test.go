package auth

import (
	"context"
	"testing"

	"eduportal/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryExists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ali", "ali@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewRepository(mock).Exists(context.Background(), "ali", "ali@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ali", "ali@x.com", "hash", RoleStudent, "Ali").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ali", "ali@x.com", "hash", RoleStudent, "Ali").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	repo := NewRepository(mock)
	u := &User{Username: "ali", Email: "ali@x.com", Password: "hash", Role: RoleStudent, Name: "Ali"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(3), u.ID)

	dup := *u
	err = repo.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users\s+WHERE email = \$1`).
		WithArgs("ali@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password", "role", "name"}).
			AddRow(int64(3), "ali", "ali@x.com", "hash", RoleStudent, "Ali"))
	mock.ExpectQuery(`FROM users`).
		WithArgs("ghost@x.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewRepository(mock)
	u, err := repo.ByEmail(context.Background(), "ali@x.com")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 3, Username: "ali", Email: "ali@x.com", Password: "hash", Role: RoleStudent, Name: "Ali"}, u)

	_, err = repo.ByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
