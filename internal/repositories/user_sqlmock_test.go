package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/clipstream/clipstream/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestUserWriteRepository_UpdateAvatar_ErrorPaths(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)
	userID := uuid.New()
	asset := &models.Asset{URL: "https://cdn/a.png", Key: "uploads/a.png"}

	t.Run("no row means missing user, not an error", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs(userID, asset.URL, asset.Key).
			WillReturnError(sql.ErrNoRows)

		updated, err := repo.UpdateAvatar(context.Background(), userID, asset)
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("driver error propagates", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs(userID, asset.URL, asset.Key).
			WillReturnError(errors.New("connection reset"))

		updated, err := repo.UpdateAvatar(context.Background(), userID, asset)
		assert.Error(t, err)
		assert.Nil(t, updated)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdateRefreshToken_Statement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)
	userID := uuid.New()

	t.Run("nil token clears the stored value", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(userID, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRefreshToken(context.Background(), userID, nil))
	})

	t.Run("token is written as-is", func(t *testing.T) {
		token := "REFRESH-1"
		mock.ExpectExec("UPDATE users").
			WithArgs(userID, token).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRefreshToken(context.Background(), userID, &token))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
