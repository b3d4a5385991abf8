package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResultRepo(t *testing.T) (*resultRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &resultRepository{db: db, logger: logger.Nop()}, mock
}

func TestSaveResult(t *testing.T) {
	repo, mock := newTestResultRepo(t)

	result := models.Result{
		UserID:         2,
		KeyHash:        "abc",
		MenuPath:       "menu/abc.csv",
		PeoplePath:     "people/abc.csv",
		PredictionPath: "prediction/abc.csv",
	}

	mock.ExpectQuery("INSERT INTO results (.+) RETURNING result_id").
		WithArgs(int64(2), "abc", "menu/abc.csv", "people/abc.csv", "prediction/abc.csv", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(11))

	saved, err := repo.SaveResult(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, int64(11), saved.ResultID)
	assert.False(t, saved.GenerationTime.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveResult_AnonymousStoresNull(t *testing.T) {
	repo, mock := newTestResultRepo(t)

	mock.ExpectQuery("INSERT INTO results").
		WithArgs(nil, "abc", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(1))

	_, err := repo.SaveResult(context.Background(), models.Result{KeyHash: "abc"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveResult_Error(t *testing.T) {
	repo, mock := newTestResultRepo(t)

	mock.ExpectQuery("INSERT INTO results").WillReturnError(errors.New("disk full"))

	_, err := repo.SaveResult(context.Background(), models.Result{KeyHash: "abc"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestListResultsByUser(t *testing.T) {
	repo, mock := newTestResultRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM results WHERE user_id = \\$1 ORDER BY generation_time DESC, result_id DESC LIMIT 5").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"result_id", "user_id", "key_hash", "menu_path", "people_path", "prediction_path", "generation_time"}).
			AddRow(2, 3, "h2", "m2", "p2", "r2", now).
			AddRow(1, 3, "h1", "m1", "p1", "r1", now.Add(-time.Hour)))

	results, err := repo.ListResultsByUser(context.Background(), 3, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "h2", results[0].KeyHash)
	assert.Equal(t, int64(3), results[1].UserID)
}
