package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"io"

	"github.com/MKhiriev/menu-predictor/models"
)

// AccountService runs the account pages. Form problems are reported as
// flags on page and a false result; the error return is reserved for
// infrastructure failures.
type AccountService interface {
	AuthoriseUser(ctx context.Context, form models.Form, page models.Page) (models.User, bool, error)
	RegisterUser(ctx context.Context, form models.Form, page models.Page, session *models.Session) (models.User, bool, error)

	RestoreSearchEmail(ctx context.Context, form models.Form, page models.Page, session *models.Session) (bool, error)
	RestoreCheckAnswer(ctx context.Context, form models.Form, page models.Page, session *models.Session) (bool, error)
	RestoreChangePassword(ctx context.Context, form models.Form, page models.Page, session *models.Session) (bool, error)

	// ResearchFillData shows the progress of the restore flow on page.
	ResearchFillData(ctx context.Context, session *models.Session, page models.Page) error
}

// PredictionService turns uploaded menu and people files into predictions.
type PredictionService interface {
	// MakePredictionFile runs the model stored under modelKey and writes the
	// prediction to "prediction/<hashKey>.csv", returning that key.
	MakePredictionFile(ctx context.Context, menu, people []byte, hashKey, modelKey string) (string, error)

	// AddNewResult stores the inputs, predicts with the model of userID (the
	// default model for zero) and records a Result. It returns the record
	// and the prediction content.
	AddNewResult(ctx context.Context, userID int64, menu, people []byte) (models.Result, []byte, error)

	ReadUploadedFile(r io.Reader, limit int64) ([]byte, error)

	// CheckDefaultModel fails with ErrDefaultModelMissing when the shared
	// default model artifact does not exist.
	CheckDefaultModel(ctx context.Context) error
}

// ModelService manages per-user models.
type ModelService interface {
	GenerateModel(ctx context.Context, pkg, name string, userID int64) (models.ModelDescriptor, error)
	Train(ctx context.Context, userID int64, form models.Form, data []byte) (models.TrainReport, error)
	GetSettings(ctx context.Context, userID int64) (models.AlgorithmSettings, error)
}

// SessionService issues and resolves browser sessions. The cookie holds a
// signed token whose subject is the server-side session ID.
type SessionService interface {
	Start(ctx context.Context) (*models.Session, models.Token, error)
	Resume(ctx context.Context, tokenString string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Destroy(ctx context.Context, sessionID string) error
	CleanupExpired(ctx context.Context) (int, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) (models.Health, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
