package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/models"
)

type appInfoService struct {
	build    models.AppBuildInfo
	database Pinger

	logger *logger.Logger
}

func NewAppInfoService(build models.AppBuildInfo, database Pinger, logger *logger.Logger) (AppInfoService, error) {
	if build.BuildVersion() == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		build:    build,
		database: database,
		logger:   logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.build.BuildVersion()
}

// Health reports build metadata and database reachability. The report is
// filled even when the database check fails.
func (s *appInfoService) Health(ctx context.Context) (models.Health, error) {
	report := models.Health{
		Status:   models.HealthOK,
		Database: models.HealthOK,
		Version:  s.build.BuildVersion(),
		Date:     s.build.BuildDate(),
		Commit:   s.build.BuildCommit(),
	}

	if s.database == nil {
		return report, nil
	}

	if err := s.database.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appInfoService.Health").Msg("database ping failed")
		report.Status = models.HealthUnavailable
		report.Database = models.HealthUnavailable
		return report, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	return report, nil
}
