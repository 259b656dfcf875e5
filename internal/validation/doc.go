// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared. It validates
// configuration sections, training parameters, and prediction inputs.
// Field names in messages come from koanf or json tags, so errors name the
// keys an operator actually writes:
//
//	type ModelConfig struct {
//	    Kind   string `koanf:"kind" validate:"oneof=ridge baseline"`
//	    Epochs int    `koanf:"epochs" validate:"min=1,max=10000"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    // "epochs must be at least 1"
//	}
//
// # Custom Tags
//
//   - loglevel: a level name accepted by logging.ValidLevel, or empty
package validation
