package handler

import (
	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/handler/http"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg.App, cfg.Server, logger),
	}, nil
}
