package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidAlgorithm  = errors.New("invalid algorithm package or name")
	ErrInvalidParams     = errors.New("algorithm params must be a JSON object")
	ErrInvalidProportion = errors.New("proportion must be in (0, 1]")
	ErrInvalidRowCount   = errors.New("row count must not be negative")
	ErrInvalidModelPath  = errors.New("invalid model path")
)
