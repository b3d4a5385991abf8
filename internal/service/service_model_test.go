package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/menu-predictor/internal/logger"
	"github.com/MKhiriev/menu-predictor/internal/mlshell"
	"github.com/MKhiriev/menu-predictor/internal/mock"
	"github.com/MKhiriev/menu-predictor/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type modelMocks struct {
	users     *mock.MockUserRepository
	settings  *mock.MockSettingsRepository
	artifacts *mock.MockArtifactStorage
	shell     *mock.MockShell
	validator *mock.MockValidator
}

func newTestModelSvc(t *testing.T) (*modelService, modelMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := modelMocks{
		users:     mock.NewMockUserRepository(ctrl),
		settings:  mock.NewMockSettingsRepository(ctrl),
		artifacts: mock.NewMockArtifactStorage(ctrl),
		shell:     mock.NewMockShell(ctrl),
		validator: mock.NewMockValidator(ctrl),
	}

	svc := NewModelService(m.users, m.settings, m.artifacts, m.shell, m.validator, defaultModel, logger.Nop()).(*modelService)
	return svc, m
}

func storedSettings(modelPath string) models.AlgorithmSettings {
	return models.AlgorithmSettings{
		UserID:           4,
		AlgorithmPackage: mlshell.DefaultAlgorithm.Package,
		AlgorithmName:    mlshell.DefaultAlgorithm.Class,
		AlgorithmParams:  []byte("{}"),
		Parser:           models.DefaultParserConfig,
		ModelPath:        modelPath,
	}
}

func TestGenerateModel_WritesDescriptor(t *testing.T) {
	svc, m := newTestModelSvc(t)
	ctx := context.Background()

	m.settings.EXPECT().GetSettings(ctx, int64(4)).Return(storedSettings(defaultModel), nil)
	m.artifacts.EXPECT().Save(ctx, "models/4.json", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data []byte) error {
			var d models.ModelDescriptor
			require.NoError(t, json.Unmarshal(data, &d))
			assert.Equal(t, "sklearn.linear_model", d.Package)
			assert.Equal(t, "Ridge", d.Class)
			assert.Equal(t, "ridge", d.Adapter)
			assert.Equal(t, int64(4), d.UserID)
			return nil
		},
	)

	descriptor, err := svc.GenerateModel(ctx, "sklearn.linear_model", "Ridge", 4)

	require.NoError(t, err)
	assert.Equal(t, "ridge", descriptor.Adapter)
}

func TestGenerateModel_UnsupportedAlgorithm(t *testing.T) {
	svc, m := newTestModelSvc(t)

	m.settings.EXPECT().GetSettings(gomock.Any(), int64(4)).Return(storedSettings(defaultModel), nil)
	m.artifacts.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.GenerateModel(context.Background(), "os", "system", 4)
	assert.ErrorIs(t, err, mlshell.ErrUnsupportedAlgorithm)
}

func TestTrain_NotResearcher(t *testing.T) {
	svc, m := newTestModelSvc(t)

	m.users.EXPECT().GetUserByID(gomock.Any(), int64(4)).Return(models.User{UserID: 4}, nil)

	_, err := svc.Train(context.Background(), 4, models.Form{}, []byte("data"))
	assert.ErrorIs(t, err, ErrNotResearcher)
}

func TestTrain_ReplacesPreviousModel(t *testing.T) {
	svc, m := newTestModelSvc(t)
	ctx := context.Background()

	form := models.Form{
		models.FieldAlgorithmPackage: "sklearn.neighbors",
		models.FieldAlgorithmName:    "KNeighborsRegressor",
		models.FieldAlgorithmParams:  `{"n_neighbors":3}`,
		models.FieldProportion:       "0.7",
		models.FieldRowCount:         "100",
		models.FieldRawDate:          "on",
	}

	m.users.EXPECT().GetUserByID(ctx, int64(4)).Return(models.User{UserID: 4, IsResearcher: true}, nil)
	m.settings.EXPECT().GetSettings(ctx, int64(4)).Return(storedSettings("models/old.mdl"), nil)
	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.artifacts.EXPECT().Save(ctx, "models/4.json", gomock.Any()).Return(nil)
	m.shell.EXPECT().Train(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req mlshell.TrainRequest) ([]byte, error) {
			assert.Equal(t, "knn", req.Descriptor.Adapter)
			assert.Equal(t, 0.7, req.Descriptor.Parser.Proportion)
			assert.Equal(t, 100, req.Descriptor.Parser.RowCount)
			assert.True(t, req.Descriptor.Parser.RawDate)
			assert.Equal(t, []byte("data"), req.Data)
			return []byte("trained"), nil
		},
	)
	m.shell.EXPECT().Test(ctx, []byte("trained")).Return(models.Quality{"r2": 0.9}, nil)
	m.artifacts.EXPECT().Save(ctx, "models/4.mdl", []byte("trained")).Return(nil)
	m.settings.EXPECT().UpdateSettings(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.AlgorithmSettings) error {
			assert.Equal(t, "models/4.mdl", s.ModelPath)
			assert.Equal(t, "KNeighborsRegressor", s.AlgorithmName)
			assert.False(t, s.Debug)
			return nil
		},
	)
	m.artifacts.EXPECT().Delete(ctx, "models/old.mdl").Return(nil)

	report, err := svc.Train(ctx, 4, form, []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, "models/4.mdl", report.ModelPath)
	assert.Equal(t, 0.9, report.Quality["r2"])
}

func TestTrain_KeepsDefaultModel(t *testing.T) {
	svc, m := newTestModelSvc(t)

	m.users.EXPECT().GetUserByID(gomock.Any(), int64(4)).Return(models.User{UserID: 4, IsResearcher: true}, nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), int64(4)).Return(storedSettings(defaultModel), nil)
	m.validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	m.artifacts.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.shell.EXPECT().Train(gomock.Any(), gomock.Any()).Return([]byte("trained"), nil)
	m.shell.EXPECT().Test(gomock.Any(), gomock.Any()).Return(models.Quality{}, nil)
	m.settings.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).Return(nil)
	m.artifacts.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Train(context.Background(), 4, models.Form{}, []byte("data"))
	require.NoError(t, err)
}

func TestTrain_InvalidForm(t *testing.T) {
	tests := []struct {
		name string
		form models.Form
	}{
		{name: "bad proportion", form: models.Form{models.FieldProportion: "most"}},
		{name: "bad row count", form: models.Form{models.FieldRowCount: "1.5"}},
		{name: "unknown algorithm", form: models.Form{models.FieldAlgorithmName: "Nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestModelSvc(t)

			m.users.EXPECT().GetUserByID(gomock.Any(), int64(4)).Return(models.User{UserID: 4, IsResearcher: true}, nil)
			m.settings.EXPECT().GetSettings(gomock.Any(), int64(4)).Return(storedSettings(defaultModel), nil)
			m.shell.EXPECT().Train(gomock.Any(), gomock.Any()).Times(0)

			_, err := svc.Train(context.Background(), 4, tt.form, []byte("data"))
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestTrain_ValidatorRejects(t *testing.T) {
	svc, m := newTestModelSvc(t)

	m.users.EXPECT().GetUserByID(gomock.Any(), int64(4)).Return(models.User{UserID: 4, IsResearcher: true}, nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), int64(4)).Return(storedSettings(defaultModel), nil)
	m.validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(errors.New("proportion must be in (0, 1]"))

	_, err := svc.Train(context.Background(), 4, models.Form{models.FieldProportion: "2"}, []byte("data"))
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestTrain_EmptyData(t *testing.T) {
	svc, m := newTestModelSvc(t)

	m.users.EXPECT().GetUserByID(gomock.Any(), int64(4)).Return(models.User{UserID: 4, IsResearcher: true}, nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), int64(4)).Return(storedSettings(defaultModel), nil)
	m.validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Train(context.Background(), 4, models.Form{}, nil)
	assert.ErrorIs(t, err, ErrEmptyTrainingData)
}

func TestTrain_ShellFailureKeepsSettings(t *testing.T) {
	svc, m := newTestModelSvc(t)

	m.users.EXPECT().GetUserByID(gomock.Any(), int64(4)).Return(models.User{UserID: 4, IsResearcher: true}, nil)
	m.settings.EXPECT().GetSettings(gomock.Any(), int64(4)).Return(storedSettings("models/old.mdl"), nil)
	m.validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	m.artifacts.EXPECT().Save(gomock.Any(), "models/4.json", gomock.Any()).Return(nil)
	m.shell.EXPECT().Train(gomock.Any(), gomock.Any()).Return(nil, mlshell.ErrShellFailed)
	m.settings.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).Times(0)
	m.artifacts.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Train(context.Background(), 4, models.Form{}, []byte("data"))
	assert.ErrorIs(t, err, mlshell.ErrShellFailed)
}

func TestSettingsFromForm_CheckboxesOffWhenAbsent(t *testing.T) {
	current := storedSettings(defaultModel)
	current.Debug = true
	current.Parser.RawDate = true

	next, err := settingsFromForm(current, models.Form{})

	require.NoError(t, err)
	assert.False(t, next.Debug)
	assert.False(t, next.Parser.RawDate)
	assert.Equal(t, current.AlgorithmName, next.AlgorithmName)
	assert.Equal(t, current.Parser.Proportion, next.Parser.Proportion)
}

func TestSettingsFromForm_EmptyParamsBecomeObject(t *testing.T) {
	next, err := settingsFromForm(storedSettings(defaultModel), models.Form{models.FieldAlgorithmParams: ""})

	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(next.AlgorithmParams))
}

func TestSettingsFromForm_ClassWithoutPackage(t *testing.T) {
	next, err := settingsFromForm(storedSettings(defaultModel), models.Form{models.FieldAlgorithmName: "DecisionTreeRegressor"})

	require.NoError(t, err)
	assert.Equal(t, "sklearn.tree", next.AlgorithmPackage)
	assert.Equal(t, "DecisionTreeRegressor", next.AlgorithmName)
}
