// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Result is the record of one prediction run.
//
// KeyHash is the md5 content hash of the two input files. It is stored and
// indexed but no code path uses it to deduplicate runs: repeated inputs
// produce a new Result and a new prediction artifact each time.
type Result struct {
	ResultID int64 `json:"id"`

	// UserID is the owner of the run, zero for anonymous uploads.
	UserID int64 `json:"-"`

	KeyHash string `json:"key_hash"`

	// MenuPath, PeoplePath and PredictionPath are artifact keys.
	MenuPath       string `json:"menu_path"`
	PeoplePath     string `json:"people_path"`
	PredictionPath string `json:"prediction_path"`

	GenerationTime time.Time `json:"generation_time"`
}

// TableName returns the name of the database table
// associated with the Result model.
func (r Result) TableName() string {
	return "results"
}
