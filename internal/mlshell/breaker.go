package mlshell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/models"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit breaker around a [Shell].
type BreakerSettings struct {
	Name string
	// MaxFailures consecutive failures open the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before a probe call.
	OpenTimeout time.Duration
	// OnStateChange is called after every transition, e.g. to export metrics.
	OnStateChange func(from, to gobreaker.State)
}

// breakerShell fails fast with [ErrShellUnavailable] while the wrapped shell
// keeps failing.
type breakerShell struct {
	next Shell
	cb   *gobreaker.CircuitBreaker[any]
}

// WithBreaker wraps next in a circuit breaker. Validation-type failures
// (unsupported algorithm, empty model) do not count against the shell.
func WithBreaker(next Shell, settings BreakerSettings, log *logger.Logger) Shell {
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrUnsupportedAlgorithm) || errors.Is(err, ErrEmptyModel) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("ml shell breaker state changed")
			if settings.OnStateChange != nil {
				settings.OnStateChange(from, to)
			}
		},
	})

	return &breakerShell{next: next, cb: cb}
}

func (s *breakerShell) Train(ctx context.Context, req TrainRequest) ([]byte, error) {
	out, err := s.execute(func() (any, error) {
		return s.next.Train(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (s *breakerShell) Test(ctx context.Context, model []byte) (models.Quality, error) {
	out, err := s.execute(func() (any, error) {
		return s.next.Test(ctx, model)
	})
	if err != nil {
		return nil, err
	}
	return out.(models.Quality), nil
}

func (s *breakerShell) Predict(ctx context.Context, model, people, menu []byte) ([]byte, error) {
	out, err := s.execute(func() (any, error) {
		return s.next.Predict(ctx, model, people, menu)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (s *breakerShell) execute(fn func() (any, error)) (any, error) {
	out, err := s.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrShellUnavailable, err)
	}
	return out, err
}
