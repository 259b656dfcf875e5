// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomtom215/cinerate/internal/validation"
)

// Validate checks that configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateModel(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	if err := validateSection("watch", &c.Watch); err != nil {
		return err
	}

	return validateSection("supervisor", &c.Supervisor)
}

func validateSection(name string, section interface{}) error {
	if verr := validation.ValidateStruct(section); verr != nil {
		return fmt.Errorf("%s: %w", name, verr)
	}
	return nil
}

// validateData validates the data source and split ratio
func (c *Config) validateData() error {
	if err := validateSection("data", &c.Data); err != nil {
		return err
	}
	if c.Data.Path == "" {
		return nil
	}
	info, err := os.Stat(c.Data.Path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("data: DATA_PATH %s is a directory, want a CSV file", c.Data.Path)
	}
	return nil
}

// validateModel validates the regressor settings
func (c *Config) validateModel() error {
	if err := validateSection("model", &c.Model); err != nil {
		return err
	}
	return c.Model.TrainConfig().Check()
}

// validateLogging validates the log level and format
func (c *Config) validateLogging() error {
	return validateSection("logging", &c.Logging)
}

// validateMetrics validates the textfile destination directory
func (c *Config) validateMetrics() error {
	if err := validateSection("metrics", &c.Metrics); err != nil {
		return err
	}
	if c.Metrics.Textfile == "" {
		return nil
	}
	dir := filepath.Dir(c.Metrics.Textfile)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("metrics: METRICS_TEXTFILE directory %s does not exist", dir)
	}
	return nil
}
