package service

import (
	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/internal/validators"
	"github.com/MKhiriev/menu-predictor/models"
)

type Services struct {
	AccountService    AccountService
	PredictionService PredictionService
	ModelService      ModelService
	SessionService    SessionService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, shell mlshell.Shell, build models.AppBuildInfo, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(build.WithVersion(cfg.App.Version), storages, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AccountService: NewAccountService(storages.UserRepository, storages.SettingsRepository,
			cfg.App.PasswordCost, cfg.Storage.Files.DefaultModel, logger),
		PredictionService: NewPredictionService(storages.ResultRepository, storages.SettingsRepository,
			storages.Artifacts, shell, cfg.Storage.Files.DefaultModel, logger),
		ModelService: NewModelService(storages.UserRepository, storages.SettingsRepository,
			storages.Artifacts, shell, validators.NewSettingsValidator(), cfg.Storage.Files.DefaultModel, logger),
		SessionService: NewSessionService(storages.Sessions, cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
