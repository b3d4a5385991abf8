package mlshell

import (
	"fmt"

	"github.com/MKhiriev/menu-predictor/models"
)

// Shell operations. They name the exec sub-command and the HTTP path.
const (
	opTrain   = "train"
	opTest    = "test"
	opPredict = "predict"
)

// request is the JSON document sent to the shell. Byte slices travel as
// base64 strings.
type request struct {
	Descriptor *models.ModelDescriptor `json:"descriptor,omitempty"`
	Data       []byte                  `json:"data,omitempty"`
	Model      []byte                  `json:"model,omitempty"`
	People     []byte                  `json:"people,omitempty"`
	Menu       []byte                  `json:"menu,omitempty"`
}

// response is the JSON document returned by the shell.
type response struct {
	Model      []byte         `json:"model,omitempty"`
	Quality    models.Quality `json:"quality,omitempty"`
	Prediction []byte         `json:"prediction,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (r response) err(op string) error {
	if r.Error != "" {
		return fmt.Errorf("%w: %s: %s", ErrShellFailed, op, r.Error)
	}
	return nil
}

func trainRequest(req TrainRequest) request {
	descriptor := req.Descriptor
	return request{Descriptor: &descriptor, Data: req.Data}
}
