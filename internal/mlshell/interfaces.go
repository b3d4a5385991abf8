package mlshell

//go:generate mockgen -source=interfaces.go -destination=../mock/shell_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/menu-predictor/models"
)

// TrainRequest carries everything the shell needs to fit a model.
type TrainRequest struct {
	Descriptor models.ModelDescriptor `json:"descriptor"`
	Data       []byte                 `json:"data"`
}

// Shell is the contract of the external ML shell.
//
// Test evaluates a model on the hold-out part of its training data, which
// the shell keeps inside the model artifact.
type Shell interface {
	Train(ctx context.Context, req TrainRequest) ([]byte, error)
	Test(ctx context.Context, model []byte) (models.Quality, error)
	Predict(ctx context.Context, model, people, menu []byte) ([]byte, error)
}
