// Package config loads service configuration for the scan-export server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hippogriff-ai/roomscan/internal/units"
)

// ServiceConfig holds the startup configuration for the export service.
// All fields are pointers so a partial JSON file only overrides what it
// names; the Get* accessors supply defaults for everything else.
type ServiceConfig struct {
	Listen        *string `json:"listen,omitempty"`
	DatabasePath  *string `json:"database_path,omitempty"`
	MigrationsDir *string `json:"migrations_dir,omitempty"`
	DisplayUnits  *string `json:"display_units,omitempty"`
	PlotMaxPoints *int    `json:"plot_max_points,omitempty"`
}

// EmptyServiceConfig returns a ServiceConfig with all fields set to nil.
func EmptyServiceConfig() *ServiceConfig {
	return &ServiceConfig{}
}

// LoadServiceConfig loads a ServiceConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size. Fields omitted from the JSON file retain their default
// values, so partial configs are safe.
func LoadServiceConfig(path string) (*ServiceConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyServiceConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *ServiceConfig) Validate() error {
	if c.Listen != nil && *c.Listen == "" {
		return fmt.Errorf("listen address must not be empty when set")
	}
	if c.DisplayUnits != nil && !units.IsValid(*c.DisplayUnits) {
		return fmt.Errorf("display_units must be one of %s, got %q",
			units.GetValidUnitsString(), *c.DisplayUnits)
	}
	if c.PlotMaxPoints != nil && *c.PlotMaxPoints < 100 {
		return fmt.Errorf("plot_max_points must be at least 100, got %d", *c.PlotMaxPoints)
	}
	return nil
}

// GetListen returns the listen address or the default.
func (c *ServiceConfig) GetListen() string {
	if c.Listen == nil {
		return ":8080"
	}
	return *c.Listen
}

// GetDatabasePath returns the database path or the default.
func (c *ServiceConfig) GetDatabasePath() string {
	if c.DatabasePath == nil {
		return "scan_exports.db"
	}
	return *c.DatabasePath
}

// GetMigrationsDir returns the migrations directory or the default.
func (c *ServiceConfig) GetMigrationsDir() string {
	if c.MigrationsDir == nil {
		return "internal/db/migrations"
	}
	return *c.MigrationsDir
}

// GetDisplayUnits returns the display units or the default.
func (c *ServiceConfig) GetDisplayUnits() string {
	if c.DisplayUnits == nil {
		return units.Meters
	}
	return *c.DisplayUnits
}

// GetPlotMaxPoints returns the floorplan point budget or the default.
func (c *ServiceConfig) GetPlotMaxPoints() int {
	if c.PlotMaxPoints == nil {
		return 2000
	}
	return *c.PlotMaxPoints
}
