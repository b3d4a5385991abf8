package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/metrics"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/store"
	"github.com/MKhiriev/menu-predictor/internal/validators"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/goccy/go-json"
)

func descriptorKey(userID int64) string { return fmt.Sprintf("models/%d.json", userID) }
func modelKey(userID int64) string      { return fmt.Sprintf("models/%d.mdl", userID) }

type modelService struct {
	userRepository     store.UserRepository
	settingsRepository store.SettingsRepository
	artifacts          store.ArtifactStorage
	shell              mlshell.Shell
	validator          validators.Validator

	defaultModel string

	logger *logger.Logger
}

// NewModelService constructs a ModelService.
func NewModelService(users store.UserRepository, settings store.SettingsRepository, artifacts store.ArtifactStorage,
	shell mlshell.Shell, validator validators.Validator, defaultModel string, logger *logger.Logger) ModelService {
	return &modelService{
		userRepository:     users,
		settingsRepository: settings,
		artifacts:          artifacts,
		shell:              shell,
		validator:          validator,
		defaultModel:       defaultModel,
		logger:             logger,
	}
}

func (m *modelService) GetSettings(ctx context.Context, userID int64) (models.AlgorithmSettings, error) {
	return m.settingsRepository.GetSettings(ctx, userID)
}

// GenerateModel binds the algorithm pkg.name to userID with the stored
// parameters and parser configuration of the user, and writes the
// descriptor read by the shell to "models/<user_id>.json".
func (m *modelService) GenerateModel(ctx context.Context, pkg, name string, userID int64) (models.ModelDescriptor, error) {
	settings, err := m.settingsRepository.GetSettings(ctx, userID)
	if err != nil {
		return models.ModelDescriptor{}, fmt.Errorf("settings lookup failed: %w", err)
	}
	settings.AlgorithmPackage = pkg
	settings.AlgorithmName = name

	return m.writeDescriptor(ctx, settings)
}

func (m *modelService) writeDescriptor(ctx context.Context, settings models.AlgorithmSettings) (models.ModelDescriptor, error) {
	algorithm, err := mlshell.LookupAlgorithm(settings.AlgorithmPackage, settings.AlgorithmName)
	if err != nil {
		return models.ModelDescriptor{}, err
	}

	descriptor := models.ModelDescriptor{
		UserID:  settings.UserID,
		Package: algorithm.Package,
		Class:   algorithm.Class,
		Adapter: algorithm.Adapter,
		Params:  settings.AlgorithmParams,
		Parser:  settings.Parser,
		Debug:   settings.Debug,
	}

	data, err := json.Marshal(descriptor)
	if err != nil {
		return models.ModelDescriptor{}, fmt.Errorf("marshal descriptor: %w", err)
	}
	if err := m.artifacts.Save(ctx, descriptorKey(settings.UserID), data); err != nil {
		return models.ModelDescriptor{}, fmt.Errorf("save descriptor: %w", err)
	}

	return descriptor, nil
}

// Train retrains the model of a researcher with the settings of the
// research form and data. The new model replaces the previous one, which
// is deleted unless it is the shared default.
func (m *modelService) Train(ctx context.Context, userID int64, form models.Form, data []byte) (report models.TrainReport, err error) {
	log := logger.FromContext(ctx)

	start := time.Now()
	defer func() {
		metrics.RecordTraining(time.Since(start), err)
	}()

	user, err := m.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.TrainReport{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if !user.IsResearcher {
		return models.TrainReport{}, ErrNotResearcher
	}

	current, err := m.settingsRepository.GetSettings(ctx, userID)
	if err != nil {
		return models.TrainReport{}, fmt.Errorf("settings lookup failed: %w", err)
	}

	next, err := settingsFromForm(current, form)
	if err != nil {
		return models.TrainReport{}, err
	}
	if err := m.validator.Validate(ctx, next); err != nil {
		return models.TrainReport{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if len(data) == 0 {
		return models.TrainReport{}, ErrEmptyTrainingData
	}

	descriptor, err := m.writeDescriptor(ctx, next)
	if err != nil {
		return models.TrainReport{}, err
	}

	model, err := m.shell.Train(ctx, mlshell.TrainRequest{Descriptor: descriptor, Data: data})
	if err != nil {
		log.Err(err).Str("func", "*modelService.Train").Int64("id", userID).Msg("training failed")
		return models.TrainReport{}, fmt.Errorf("training failed: %w", err)
	}

	quality, err := m.shell.Test(ctx, model)
	if err != nil {
		return models.TrainReport{}, fmt.Errorf("testing failed: %w", err)
	}

	key := modelKey(userID)
	if err := m.artifacts.Save(ctx, key, model); err != nil {
		return models.TrainReport{}, fmt.Errorf("save model: %w", err)
	}

	next.ModelPath = key
	if err := m.settingsRepository.UpdateSettings(ctx, next); err != nil {
		return models.TrainReport{}, fmt.Errorf("update settings: %w", err)
	}

	if previous := current.ModelPath; previous != "" && previous != key && previous != m.defaultModel {
		if err := m.artifacts.Delete(ctx, previous); err != nil {
			log.Warn().Err(err).Str("key", previous).Msg("previous model was not deleted")
		}
	}

	report = models.TrainReport{
		UserID:    userID,
		ModelPath: key,
		Quality:   quality,
		Duration:  time.Since(start),
	}
	log.Info().Int64("id", userID).Str("algorithm", descriptor.Adapter).Any("quality", quality).Msg("model retrained")

	return report, nil
}

// settingsFromForm applies the research form to the current settings.
// Absent text fields keep their value; checkboxes are off when absent. A
// class name sent without its package selects the package it belongs to.
func settingsFromForm(current models.AlgorithmSettings, form models.Form) (models.AlgorithmSettings, error) {
	next := current

	pkg, name := form[models.FieldAlgorithmPackage], form[models.FieldAlgorithmName]
	switch {
	case pkg != "" && name != "":
		next.AlgorithmPackage, next.AlgorithmName = pkg, name
	case name != "":
		algorithm, err := mlshell.LookupClass(name)
		if err != nil {
			return models.AlgorithmSettings{}, errors.Join(ErrInvalidSettings, err)
		}
		next.AlgorithmPackage, next.AlgorithmName = algorithm.Package, algorithm.Class
	case pkg != "":
		next.AlgorithmPackage = pkg
	}
	if form.Has(models.FieldAlgorithmParams) {
		next.AlgorithmParams = []byte(form[models.FieldAlgorithmParams])
		if len(next.AlgorithmParams) == 0 {
			next.AlgorithmParams = []byte("{}")
		}
	}

	if v := form[models.FieldProportion]; v != "" {
		proportion, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.AlgorithmSettings{}, fmt.Errorf("%w: proportion: %w", ErrInvalidSettings, err)
		}
		next.Parser.Proportion = proportion
	}
	if v := form[models.FieldRowCount]; v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil {
			return models.AlgorithmSettings{}, fmt.Errorf("%w: row_count: %w", ErrInvalidSettings, err)
		}
		next.Parser.RowCount = rows
	}
	next.Parser.RawDate = form.Has(models.FieldRawDate)
	next.Debug = form.Has(models.FieldDebug)

	if _, err := mlshell.LookupAlgorithm(next.AlgorithmPackage, next.AlgorithmName); err != nil {
		return models.AlgorithmSettings{}, errors.Join(ErrInvalidSettings, err)
	}

	return next, nil
}
