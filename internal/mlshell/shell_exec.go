package mlshell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/goccy/go-json"
)

// maxStderr bounds how much of the shell's stderr ends up in an error.
const maxStderr = 512

// execShell runs the shell command once per call. The operation is passed as
// the last argument, the request is written to stdin and the response is
// read from stdout.
type execShell struct {
	name    string
	args    []string
	timeout time.Duration
	logger  *logger.Logger
}

// NewExecShell returns a [Shell] that runs command, which may include
// leading arguments separated by spaces.
func NewExecShell(command string, timeout time.Duration, logger *logger.Logger) (Shell, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrUnsupportedMode)
	}

	return &execShell{
		name:    fields[0],
		args:    fields[1:],
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (s *execShell) Train(ctx context.Context, req TrainRequest) ([]byte, error) {
	resp, err := s.run(ctx, opTrain, trainRequest(req))
	if err != nil {
		return nil, err
	}
	if len(resp.Model) == 0 {
		return nil, fmt.Errorf("%w: train returned no model", ErrEmptyModel)
	}
	return resp.Model, nil
}

func (s *execShell) Test(ctx context.Context, model []byte) (models.Quality, error) {
	resp, err := s.run(ctx, opTest, request{Model: model})
	if err != nil {
		return nil, err
	}
	return resp.Quality, nil
}

func (s *execShell) Predict(ctx context.Context, model, people, menu []byte) ([]byte, error) {
	resp, err := s.run(ctx, opPredict, request{Model: model, People: people, Menu: menu})
	if err != nil {
		return nil, err
	}
	return resp.Prediction, nil
}

func (s *execShell) run(ctx context.Context, op string, req request) (response, error) {
	log := logger.FromContext(ctx)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	input, err := json.Marshal(req)
	if err != nil {
		return response{}, fmt.Errorf("marshal %s request: %w", op, err)
	}

	args := append(append([]string{}, s.args...), op)
	cmd := exec.CommandContext(ctx, s.name, args...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		log.Err(err).Str("func", "*execShell.run").Str("op", op).
			Str("stderr", truncate(stderr.String(), maxStderr)).Msg("ml shell command failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return response{}, fmt.Errorf("%w: %s: %w", ErrShellFailed, op, ctxErr)
		}
		return response{}, fmt.Errorf("%w: %s: %w: %s", ErrShellFailed, op, err, truncate(stderr.String(), maxStderr))
	}
	log.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("ml shell command finished")

	var resp response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return response{}, fmt.Errorf("%w: %s: decode response: %w", ErrShellFailed, op, err)
	}

	return resp, resp.err(op)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
