package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/user"
	"github.com/fekuna/omnipos-retail-service/internal/user/dto"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "phone", "password_hash", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})

	err := repo.Create(context.Background(), &model.User{BaseModel: model.BaseModel{ID: "u1"}, Email: "a@b.c"})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestFindByEmail_CaseInsensitive(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")).
		WithArgs("DEWI@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Dewi", "dewi@example.com", "0812", "hash", now, now))

	u, err := repo.FindByEmail(context.Background(), "DEWI@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

func TestFindByID_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	u, err := repo.FindByID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFindAll_Paginates(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id LIMIT 2 OFFSET 2")).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u3", "Budi", "budi@example.com", "0813", "hash", now, now))

	users, n, err := repo.FindAll(context.Background(), &dto.UserFilters{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, users, 1)
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Update(context.Background(), &model.User{BaseModel: model.BaseModel{ID: "ghost"}}), user.ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "ghost"), user.ErrUserNotFound)
}
