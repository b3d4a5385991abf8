package mlshell

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
)

// httpShell talks to a remote shell exposing POST /train, /test and /predict.
type httpShell struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPShell returns a [Shell] backed by the service at baseURL.
func NewHTTPShell(baseURL string, timeout time.Duration, logger *logger.Logger) Shell {
	return &httpShell{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}
}

func (s *httpShell) Train(ctx context.Context, req TrainRequest) ([]byte, error) {
	resp, err := s.post(ctx, opTrain, trainRequest(req))
	if err != nil {
		return nil, err
	}
	if len(resp.Model) == 0 {
		return nil, fmt.Errorf("%w: train returned no model", ErrEmptyModel)
	}
	return resp.Model, nil
}

func (s *httpShell) Test(ctx context.Context, model []byte) (models.Quality, error) {
	resp, err := s.post(ctx, opTest, request{Model: model})
	if err != nil {
		return nil, err
	}
	return resp.Quality, nil
}

func (s *httpShell) Predict(ctx context.Context, model, people, menu []byte) ([]byte, error) {
	resp, err := s.post(ctx, opPredict, request{Model: model, People: people, Menu: menu})
	if err != nil {
		return nil, err
	}
	return resp.Prediction, nil
}

func (s *httpShell) post(ctx context.Context, op string, req request) (response, error) {
	var result response

	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post("/" + op)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpShell.post").Str("op", op).Msg("ml shell request failed")
		return response{}, fmt.Errorf("%w: %s: %w", ErrShellFailed, op, err)
	}

	if httpResp.IsError() {
		if result.Error == "" {
			result.Error = httpResp.Status()
		}
		return response{}, result.err(op)
	}

	return result, result.err(op)
}
