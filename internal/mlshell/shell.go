package mlshell

import (
	"fmt"

	"github.com/MKhiriev/menu-predictor/internal/config"
	"github.com/MKhiriev/menu-predictor/internal/logger"
	gobreaker "github.com/sony/gobreaker/v2"
)

// New builds the transport selected by cfg.Mode and wraps it in a circuit
// breaker. onStateChange may be nil.
func New(cfg config.ML, log *logger.Logger, onStateChange func(from, to gobreaker.State)) (Shell, error) {
	var (
		shell Shell
		err   error
	)

	switch cfg.Mode {
	case "exec":
		shell, err = NewExecShell(cfg.Command, cfg.Timeout, log)
		if err != nil {
			return nil, err
		}
	case "http":
		shell = NewHTTPShell(cfg.URL, cfg.Timeout, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, cfg.Mode)
	}

	log.Info().Str("mode", cfg.Mode).Msg("ml shell configured")

	return WithBreaker(shell, BreakerSettings{
		Name:          "ml-shell",
		MaxFailures:   cfg.MaxFailures,
		OpenTimeout:   cfg.OpenTimeout,
		OnStateChange: onStateChange,
	}, log), nil
}
