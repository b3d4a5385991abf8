package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/metrics"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/internal/utils"
	"github.com/MKhiriev/menu-predictor/models"
)

// Artifact key helpers.
func predictionKey(hash string) string { return "prediction/" + hash + ".csv" }
func menuKey(hash string) string       { return "uploads/" + hash + "/menu.csv" }
func peopleKey(hash string) string     { return "uploads/" + hash + "/people.csv" }

type predictionService struct {
	resultRepository   store.ResultRepository
	settingsRepository store.SettingsRepository
	artifacts          store.ArtifactStorage
	shell              mlshell.Shell

	defaultModel string

	logger *logger.Logger
}

// NewPredictionService constructs a PredictionService.
func NewPredictionService(results store.ResultRepository, settings store.SettingsRepository, artifacts store.ArtifactStorage,
	shell mlshell.Shell, defaultModel string, logger *logger.Logger) PredictionService {
	return &predictionService{
		resultRepository:   results,
		settingsRepository: settings,
		artifacts:          artifacts,
		shell:              shell,
		defaultModel:       defaultModel,
		logger:             logger,
	}
}

func (p *predictionService) MakePredictionFile(ctx context.Context, menu, people []byte, hashKey, modelKey string) (string, error) {
	key, _, err := p.predict(ctx, menu, people, hashKey, modelKey)
	return key, err
}

// predict writes the prediction artifact. Existing predictions under the
// same hash are overwritten.
func (p *predictionService) predict(ctx context.Context, menu, people []byte, hashKey, modelKey string) (string, []byte, error) {
	model, err := p.artifacts.Load(ctx, modelKey)
	if err != nil {
		return "", nil, fmt.Errorf("load model %s: %w", modelKey, err)
	}

	prediction, err := p.shell.Predict(ctx, model, people, menu)
	if err != nil {
		return "", nil, fmt.Errorf("prediction failed: %w", err)
	}

	key := predictionKey(hashKey)
	if err := p.artifacts.Save(ctx, key, prediction); err != nil {
		return "", nil, fmt.Errorf("save prediction: %w", err)
	}

	return key, prediction, nil
}

// AddNewResult has no transaction across artifacts and the database: a
// failure after the prediction was written leaves the artifact behind.
func (p *predictionService) AddNewResult(ctx context.Context, userID int64, menu, people []byte) (result models.Result, prediction []byte, err error) {
	log := logger.FromContext(ctx)

	start := time.Now()
	defer func() {
		metrics.RecordPrediction(time.Since(start), err)
	}()

	if len(menu) == 0 || len(people) == 0 {
		return models.Result{}, nil, ErrEmptyUpload
	}

	hash, err := utils.MD5FromTwoStreams(bytes.NewReader(menu), bytes.NewReader(people))
	if err != nil {
		return models.Result{}, nil, fmt.Errorf("hash inputs: %w", err)
	}

	modelKey, err := p.modelFor(ctx, userID)
	if err != nil {
		return models.Result{}, nil, err
	}

	if err := p.artifacts.Save(ctx, menuKey(hash), menu); err != nil {
		return models.Result{}, nil, fmt.Errorf("save menu: %w", err)
	}
	if err := p.artifacts.Save(ctx, peopleKey(hash), people); err != nil {
		return models.Result{}, nil, fmt.Errorf("save people: %w", err)
	}

	key, prediction, err := p.predict(ctx, menu, people, hash, modelKey)
	if err != nil {
		log.Err(err).Str("func", "*predictionService.AddNewResult").Str("hash", hash).Msg("prediction failed")
		return models.Result{}, nil, err
	}

	result, err = p.resultRepository.SaveResult(ctx, models.Result{
		UserID:         userID,
		KeyHash:        hash,
		MenuPath:       menuKey(hash),
		PeoplePath:     peopleKey(hash),
		PredictionPath: key,
		GenerationTime: time.Now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("func", "*predictionService.AddNewResult").Str("hash", hash).Msg("result was not recorded")
		return models.Result{}, nil, fmt.Errorf("record result: %w", err)
	}

	log.Info().Int64("result_id", result.ResultID).Str("hash", hash).Str("model", modelKey).Msg("prediction created")
	return result, prediction, nil
}

// modelFor returns the model of userID, or the default model for anonymous
// users and users without settings.
func (p *predictionService) modelFor(ctx context.Context, userID int64) (string, error) {
	if userID == 0 {
		return p.defaultModel, nil
	}

	settings, err := p.settingsRepository.GetSettings(ctx, userID)
	if errors.Is(err, store.ErrSettingsNotFound) || (err == nil && settings.ModelPath == "") {
		return p.defaultModel, nil
	}
	if err != nil {
		return "", fmt.Errorf("settings lookup failed: %w", err)
	}

	return settings.ModelPath, nil
}

// ReadUploadedFile drains r into memory. Uploads over limit bytes are
// rejected; a non-positive limit disables the check.
func (p *predictionService) ReadUploadedFile(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, ErrUploadTooLarge
	}

	return data, nil
}

func (p *predictionService) CheckDefaultModel(ctx context.Context) error {
	ok, err := p.artifacts.Exists(ctx, p.defaultModel)
	if err != nil {
		return fmt.Errorf("check default model: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDefaultModelMissing, p.defaultModel)
	}
	return nil
}
