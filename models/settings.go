// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/goccy/go-json"

// ParserConfig controls how the ML shell splits and reads the training data.
type ParserConfig struct {
	// Proportion is the share of rows used for training; the rest is used
	// to measure quality.
	Proportion float64 `json:"proportion"`

	// RawDate keeps date columns unparsed.
	RawDate bool `json:"raw_date"`

	// RowCount limits the number of rows read; zero means all rows.
	RowCount int `json:"row_count"`
}

// DefaultParserConfig is the parser configuration assigned at registration.
var DefaultParserConfig = ParserConfig{
	Proportion: 0.8,
	RawDate:    false,
	RowCount:   0,
}

// AlgorithmSettings is the one-to-one companion record of a [User].
// It holds the chosen algorithm, its parameters, the parser configuration,
// the secret question used by the restore flow and the key of the user's
// trained model artifact.
type AlgorithmSettings struct {
	UserID int64 `json:"-"`

	// AlgorithmPackage and AlgorithmName identify a supported algorithm
	// adapter (see mlshell.Algorithm).
	AlgorithmPackage string `json:"algorithm_package"`
	AlgorithmName    string `json:"algorithm_name"`

	// AlgorithmParams is an opaque JSON object of hyperparameters handed
	// to the ML shell as is.
	AlgorithmParams json.RawMessage `json:"algorithm_params"`

	Parser ParserConfig `json:"parser"`

	Debug bool `json:"debug"`

	// SecretQuestion and SecretAnswer back the password restore flow.
	// The answer is stored as entered.
	SecretQuestion string `json:"-"`
	SecretAnswer   string `json:"-"`

	// ModelPath is the artifact key of the trained model owned by the user.
	ModelPath string `json:"model_path"`
}

// TableName returns the name of the database table
// associated with the AlgorithmSettings model.
func (s AlgorithmSettings) TableName() string {
	return "algorithm_settings"
}
