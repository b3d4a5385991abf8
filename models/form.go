// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Form is the set of submitted form values of one request, keyed by field name.
// Only the first value of each field is kept.
type Form map[string]string

// Has reports whether the field was submitted at all.
func (f Form) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Form field names shared by handlers, services and templates.
const (
	FieldUsername       = "username"
	FieldPassword       = "password"
	FieldPasswordDouble = "password_double"
	FieldLogin          = "login"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldEmail          = "email"
	FieldQuestion       = "question"
	FieldAnswer         = "answer"
	FieldResearcher     = "researcher"
	FieldNext           = "next"

	FieldAlgorithmPackage = "algorithm_package"
	FieldAlgorithmName    = "algorithm_name"
	FieldAlgorithmParams  = "algorithm_params"
	FieldProportion       = "proportion"
	FieldRawDate          = "raw_date"
	FieldRowCount         = "row_count"
	FieldDebug            = "debug"

	FieldFile   = "file"
	FieldMenu   = "menu"
	FieldPeople = "people"
	FieldData   = "data"
)
