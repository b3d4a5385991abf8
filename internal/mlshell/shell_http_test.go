package mlshell

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShellServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /train", func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		utils.WriteJSON(w, response{Model: []byte("fitted:" + req.Descriptor.Class)}, http.StatusOK)
	})
	mux.HandleFunc("POST /test", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, response{Quality: models.Quality{"r2": 0.9}}, http.StatusOK)
	})
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if string(req.Model) == "broken" {
			utils.WriteJSON(w, response{Error: "cannot load model"}, http.StatusUnprocessableEntity)
			return
		}
		utils.WriteJSON(w, response{Prediction: []byte("1;2;3")}, http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPShell(t *testing.T) {
	ctx := context.Background()
	srv := newShellServer(t)
	shell := NewHTTPShell(srv.URL, 5*time.Second, logger.Nop())

	model, err := shell.Train(ctx, TrainRequest{Descriptor: models.ModelDescriptor{Class: "Ridge"}})
	require.NoError(t, err)
	assert.Equal(t, "fitted:Ridge", string(model))

	quality, err := shell.Test(ctx, model)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, quality["r2"], 1e-9)

	prediction, err := shell.Predict(ctx, model, []byte("p"), []byte("m"))
	require.NoError(t, err)
	assert.Equal(t, "1;2;3", string(prediction))
}

func TestHTTPShell_ErrorResponse(t *testing.T) {
	srv := newShellServer(t)
	shell := NewHTTPShell(srv.URL, 5*time.Second, logger.Nop())

	_, err := shell.Predict(context.Background(), []byte("broken"), nil, nil)
	assert.ErrorIs(t, err, ErrShellFailed)
	assert.Contains(t, err.Error(), "cannot load model")
}

func TestHTTPShell_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	shell := NewHTTPShell(url, time.Second, logger.Nop())
	_, err := shell.Test(context.Background(), []byte("m"))
	assert.ErrorIs(t, err, ErrShellFailed)
}
