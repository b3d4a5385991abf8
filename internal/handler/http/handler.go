package http

import (
	"time"

	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/service"
)

type Handler struct {
	services *service.Services

	cookieName   string
	cookieSecure bool
	sessionTTL   time.Duration

	maxUploadBytes int64
	requestTimeout time.Duration

	rateLimitRequests int
	rateLimitWindow   time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, srv config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:          services,
		cookieName:        app.CookieName,
		cookieSecure:      app.CookieSecure,
		sessionTTL:        app.SessionTTL,
		maxUploadBytes:    srv.MaxUploadBytes,
		requestTimeout:    srv.RequestTimeout,
		rateLimitRequests: srv.RateLimitRequests,
		rateLimitWindow:   srv.RateLimitWindow,
		logger:            logger,
	}
}
