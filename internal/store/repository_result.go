package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/models"
	sq "github.com/Masterminds/squirrel"
)

type resultRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewResultRepository constructs a [ResultRepository].
func NewResultRepository(db *DB, logger *logger.Logger) ResultRepository {
	logger.Debug().Msg("creating result repository")
	return &resultRepository{
		db:     db,
		logger: logger,
	}
}

// SaveResult inserts a result row. A zero UserID is stored as NULL and a
// zero GenerationTime is replaced with the current time.
func (r *resultRepository) SaveResult(ctx context.Context, result models.Result) (models.Result, error) {
	log := logger.FromContext(ctx)

	if result.GenerationTime.IsZero() {
		result.GenerationTime = time.Now().UTC()
	}

	userID := sql.NullInt64{Int64: result.UserID, Valid: result.UserID != 0}
	query, args, err := r.db.builder.
		Insert(result.TableName()).
		Columns("user_id", "key_hash", "menu_path", "people_path", "prediction_path", "generation_time").
		Values(userID, result.KeyHash, result.MenuPath, result.PeoplePath, result.PredictionPath, result.GenerationTime).
		Suffix("RETURNING result_id").
		ToSql()
	if err != nil {
		return models.Result{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&result.ResultID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Result{}, ErrResultNotSaved
	}
	if err != nil {
		log.Err(err).Str("func", "*resultRepository.SaveResult").Msg("error saving result")
		return models.Result{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result, nil
}

// ListResultsByUser returns the newest results of userID, at most limit rows.
func (r *resultRepository) ListResultsByUser(ctx context.Context, userID int64, limit uint64) ([]models.Result, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("result_id", "user_id", "key_hash", "menu_path", "people_path", "prediction_path", "generation_time").
		From(models.Result{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("generation_time DESC", "result_id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*resultRepository.ListResultsByUser").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		var (
			res   models.Result
			owner sql.NullInt64
		)
		if err := rows.Scan(&res.ResultID, &owner, &res.KeyHash, &res.MenuPath, &res.PeoplePath, &res.PredictionPath, &res.GenerationTime); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		res.UserID = owner.Int64
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}
