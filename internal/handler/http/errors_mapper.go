package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/service"
	"github.com/MKhiriev/menu-predictor/internal/store"
)

var errorStatusMap = map[error]int{
	ErrMalformedForm: http.StatusBadRequest,

	service.ErrNotResearcher:       http.StatusForbidden,
	service.ErrInvalidSettings:     http.StatusBadRequest,
	service.ErrEmptyTrainingData:   http.StatusBadRequest,
	service.ErrEmptyUpload:         http.StatusBadRequest,
	service.ErrUploadTooLarge:      http.StatusRequestEntityTooLarge,
	service.ErrInvalidSession:      http.StatusUnauthorized,
	service.ErrDefaultModelMissing: http.StatusServiceUnavailable,
	service.ErrDatabaseUnavailable: http.StatusServiceUnavailable,

	mlshell.ErrUnsupportedAlgorithm: http.StatusBadRequest,
	mlshell.ErrEmptyModel:           http.StatusUnprocessableEntity,
	mlshell.ErrShellUnavailable:     http.StatusServiceUnavailable,
	mlshell.ErrShellFailed:          http.StatusBadGateway,

	store.ErrNoUserWasFound:   http.StatusNotFound,
	store.ErrSettingsNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
