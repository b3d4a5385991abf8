package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/metrics"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
)

type sessionService struct {
	sessions store.SessionStore

	// signKey signs the session cookie token.
	signKey string

	// issuer is the "iss" claim of every issued token; tokens with another
	// issuer are rejected.
	issuer string

	// ttl bounds both the server-side session and its token.
	ttl time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService over the session store.
func NewSessionService(sessions store.SessionStore, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		signKey:  cfg.SessionSignKey,
		issuer:   cfg.SessionIssuer,
		ttl:      cfg.SessionTTL,
		logger:   logger,
	}
}

// Start creates and stores an anonymous session and signs its token.
func (s *sessionService) Start(ctx context.Context) (*models.Session, models.Token, error) {
	session := models.NewSession(s.ttl)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, models.Token{}, fmt.Errorf("save session: %w", err)
	}

	token, err := utils.GenerateSessionToken(s.issuer, session.ID, s.ttl, s.signKey)
	if err != nil {
		return nil, models.Token{}, err
	}

	return session, token, nil
}

// Resume returns the session named by a cookie token. Forged, expired and
// unknown sessions all return ErrInvalidSession.
func (s *sessionService) Resume(ctx context.Context, tokenString string) (*models.Session, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := utils.ValidateAndParseSessionToken(tokenString, s.signKey, s.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("rejected session token")
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	session, err := s.sessions.Get(ctx, token.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) || errors.Is(err, store.ErrSessionExpired) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return session, nil
}

func (s *sessionService) Save(ctx context.Context, session *models.Session) error {
	session.LastAccessedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *sessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *sessionService) CleanupExpired(ctx context.Context) (int, error) {
	removed, err := s.sessions.CleanupExpired(ctx)
	metrics.RecordSessionCleanup(removed)
	return removed, err
}
