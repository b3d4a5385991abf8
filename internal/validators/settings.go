package validators

import (
	"bytes"
	"context"

	"github.com/MKhiriev/menu-predictor/models"
	"github.com/goccy/go-json"
)

// Field name constants restricting [SettingsValidator] to a subset of
// algorithm settings.
const (
	FieldUserID     = "user_id"
	FieldAlgorithm  = "algorithm"
	FieldParams     = "params"
	FieldProportion = "proportion"
	FieldRowCount   = "row_count"
	FieldModelPath  = "model_path"
)

// SettingsValidator implements the Validator interface for
// models.AlgorithmSettings.
type SettingsValidator struct {
}

// NewSettingsValidator constructs a SettingsValidator and returns it as the
// Validator interface.
func NewSettingsValidator() Validator {
	return &SettingsValidator{}
}

// Validate accepts models.AlgorithmSettings by value or pointer.
// Without fields every rule except FieldModelPath is checked.
func (v *SettingsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AlgorithmSettings:
		return v.validateSettings(ctx, value, fields...)
	case *models.AlgorithmSettings:
		return v.validateSettings(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *SettingsValidator) validateSettings(_ context.Context, s models.AlgorithmSettings, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldAlgorithm, FieldParams, FieldProportion, FieldRowCount}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if s.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldAlgorithm:
			if !IsCorrectString(s.AlgorithmPackage) || !IsCorrectString(s.AlgorithmName) {
				return ErrInvalidAlgorithm
			}
		case FieldParams:
			if !isJSONObject(s.AlgorithmParams) {
				return ErrInvalidParams
			}
		case FieldProportion:
			if s.Parser.Proportion <= 0 || s.Parser.Proportion > 1 {
				return ErrInvalidProportion
			}
		case FieldRowCount:
			if s.Parser.RowCount < 0 {
				return ErrInvalidRowCount
			}
		case FieldModelPath:
			if s.ModelPath == "" {
				return ErrInvalidModelPath
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isJSONObject accepts an empty value or a JSON object.
func isJSONObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	if trimmed[0] != '{' {
		return false
	}

	return json.Valid(trimmed)
}
