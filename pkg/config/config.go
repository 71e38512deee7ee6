// Package config provides configuration loading and management for fluoroquant.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the run configuration loaded from YAML.
type Config struct {
	// Segmentation parameters
	Segmentation struct {
		// RollingRadius is the rolling-background estimation radius in pixels
		RollingRadius int `yaml:"rollingRadius"`

		// MinParticleArea is the connected-component area cutoff in pixels
		MinParticleArea int `yaml:"minParticleArea"`

		// MFIThreshold separates the normal path from the
		// high-autofluorescence path (strict greater-than)
		MFIThreshold float64 `yaml:"mfiThreshold"`

		// ReporterChannel is the preferred channel index for the reporter signal
		ReporterChannel int `yaml:"reporterChannel"`

		// FallbackChannel is used when the reporter channel is absent
		FallbackChannel int `yaml:"fallbackChannel"`
	} `yaml:"segmentation"`

	// ROI is the default well region before operator adjustment
	ROI struct {
		CenterX float64 `yaml:"centerX"`
		CenterY float64 `yaml:"centerY"`
		Width   float64 `yaml:"width"`
		Height  float64 `yaml:"height"`
	} `yaml:"roi"`

	// Output parameters
	Output struct {
		// FolderPrefix names the per-run output folder; entries carrying this
		// prefix are skipped when scanning for inputs
		FolderPrefix string `yaml:"folderPrefix"`

		// MaskPrefix is prepended to the original file name for saved masks
		MaskPrefix string `yaml:"maskPrefix"`

		// SummaryName is the batch summary file name
		SummaryName string `yaml:"summaryName"`
	} `yaml:"output"`

	// Batch failure policy
	Batch struct {
		// ContinueOnError keeps the batch going after an image-scoped failure
		ContinueOnError bool `yaml:"continueOnError"`

		// ContinueOnAbort keeps the batch going after the operator cancels a
		// decision prompt
		ContinueOnAbort bool `yaml:"continueOnAbort"`
	} `yaml:"batch"`

	// Calibration wells for titre estimation
	Calibration struct {
		// ControlTitre is the known titre of the virus-only well in PFU/ml
		ControlTitre float64 `yaml:"controlTitre"`

		// ControlCoverage is the measured %coverage of the virus-only well
		ControlCoverage float64 `yaml:"controlCoverage"`

		// BaselineCoverage is the measured %coverage of the uninfected well
		BaselineCoverage float64 `yaml:"baselineCoverage"`

		// BaselineTolerance is the maximum %coverage accepted as "blank"
		BaselineTolerance float64 `yaml:"baselineTolerance"`
	} `yaml:"calibration"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Segmentation.RollingRadius = 50
	cfg.Segmentation.MinParticleArea = 100
	cfg.Segmentation.MFIThreshold = 1000
	cfg.Segmentation.ReporterChannel = 1
	cfg.Segmentation.FallbackChannel = 0

	// Expected well framing for the target microscope and magnification
	cfg.ROI.CenterX = 700
	cfg.ROI.CenterY = 1000
	cfg.ROI.Width = 3850
	cfg.ROI.Height = 3850

	cfg.Output.FolderPrefix = "Quantification"
	cfg.Output.MaskPrefix = "MASK_"
	cfg.Output.SummaryName = "summary.xls"

	cfg.Batch.ContinueOnError = true
	cfg.Batch.ContinueOnAbort = false

	cfg.Calibration.BaselineTolerance = 0.5

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
