package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/models"
	sq "github.com/Masterminds/squirrel"
)

type settingsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSettingsRepository constructs a [SettingsRepository].
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetSettings returns the settings row of userID or [ErrSettingsNotFound].
func (r *settingsRepository) GetSettings(ctx context.Context, userID int64) (models.AlgorithmSettings, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("user_id", "algorithm_package", "algorithm_name", "algorithm_params",
			"proportion", "raw_date", "row_count", "debug",
			"secret_question", "secret_answer", "model_path").
		From(models.AlgorithmSettings{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.AlgorithmSettings{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		s      models.AlgorithmSettings
		params []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.UserID, &s.AlgorithmPackage, &s.AlgorithmName, &params,
		&s.Parser.Proportion, &s.Parser.RawDate, &s.Parser.RowCount, &s.Debug,
		&s.SecretQuestion, &s.SecretAnswer, &s.ModelPath,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AlgorithmSettings{}, ErrSettingsNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.GetSettings").Msg("error scanning settings")
		return models.AlgorithmSettings{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	s.AlgorithmParams = params

	return s, nil
}

// UpdateSettings stores the algorithm choice, parser configuration, debug
// flag and model path of settings.UserID.
func (r *settingsRepository) UpdateSettings(ctx context.Context, settings models.AlgorithmSettings) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(settings.TableName()).
		SetMap(map[string]any{
			"algorithm_package": settings.AlgorithmPackage,
			"algorithm_name":    settings.AlgorithmName,
			"algorithm_params":  paramsOrEmpty(settings.AlgorithmParams),
			"proportion":        settings.Parser.Proportion,
			"raw_date":          settings.Parser.RawDate,
			"row_count":         settings.Parser.RowCount,
			"debug":             settings.Debug,
			"model_path":        settings.ModelPath,
		}).
		Where(sq.Eq{"user_id": settings.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.UpdateSettings").Msg("error updating settings")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
