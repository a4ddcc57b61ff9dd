// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

// Package validation checks request structs with go-playground/validator.
//
// Failures are reported under json field names and carry the failed rule,
// so the API can return them as VALIDATION_ERROR details unchanged. The
// package adds one rule, isodate, for the dashboard's date range:
//
//	type UpdateRequest struct {
//	    Country   string `json:"country" validate:"max=200"`
//	    StartDate string `json:"start_date" validate:"required,isodate"`
//	    EndDate   string `json:"end_date" validate:"required,isodate"`
//	}
//
//	if errs := validation.ValidateStruct(&req); errs != nil {
//	    // errs[0].Field == "start_date", errs[0].Rule == "isodate"
//	}
package validation
