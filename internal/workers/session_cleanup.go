// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/service"
)

// SessionCleanupWorker removes expired sessions on a fixed interval.
type SessionCleanupWorker struct {
	sessions service.SessionService
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionCleanupWorker(sessions service.SessionService, interval time.Duration, logger *logger.Logger) *SessionCleanupWorker {
	return &SessionCleanupWorker{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

func (w *SessionCleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("session cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("session cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SessionCleanupWorker) sweep(ctx context.Context) {
	removed, err := w.sessions.CleanupExpired(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "*SessionCleanupWorker.sweep").Msg("expired sessions were not removed")
		return
	}
	if removed > 0 {
		w.logger.Debug().Int("removed", removed).Msg("expired sessions removed")
	}
}
