package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfig_PartialOverride(t *testing.T) {
	path := writeConfig(t, "svc.json", `{"listen": ":9090", "display_units": "feet"}`)

	cfg, err := LoadServiceConfig(path)
	if err != nil {
		t.Fatalf("LoadServiceConfig: %v", err)
	}

	if got := cfg.GetListen(); got != ":9090" {
		t.Errorf("GetListen() = %q, want :9090", got)
	}
	if got := cfg.GetDisplayUnits(); got != "feet" {
		t.Errorf("GetDisplayUnits() = %q, want feet", got)
	}
	// Unset fields fall back to defaults.
	if got := cfg.GetDatabasePath(); got != "scan_exports.db" {
		t.Errorf("GetDatabasePath() = %q, want default", got)
	}
	if got := cfg.GetPlotMaxPoints(); got != 2000 {
		t.Errorf("GetPlotMaxPoints() = %d, want 2000", got)
	}
}

func TestLoadServiceConfig_RequiresJSONExtension(t *testing.T) {
	path := writeConfig(t, "svc.yaml", `listen: ":9090"`)

	if _, err := LoadServiceConfig(path); err == nil {
		t.Error("expected error for non-JSON extension")
	}
}

func TestLoadServiceConfig_MissingFile(t *testing.T) {
	if _, err := LoadServiceConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"empty config is valid", `{}`, false},
		{"valid units", `{"display_units": "centimeters"}`, false},
		{"invalid units", `{"display_units": "furlongs"}`, true},
		{"empty listen", `{"listen": ""}`, true},
		{"plot budget too small", `{"plot_max_points": 10}`, true},
		{"plot budget ok", `{"plot_max_points": 500}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "v.json", tt.json)
			_, err := LoadServiceConfig(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadServiceConfig(%s) error = %v, wantErr %v", tt.json, err, tt.wantErr)
			}
		})
	}
}

func TestEmptyServiceConfig_Defaults(t *testing.T) {
	cfg := EmptyServiceConfig()

	if cfg.GetListen() != ":8080" {
		t.Errorf("GetListen() = %q", cfg.GetListen())
	}
	if cfg.GetMigrationsDir() != "internal/db/migrations" {
		t.Errorf("GetMigrationsDir() = %q", cfg.GetMigrationsDir())
	}
	if cfg.GetDisplayUnits() != "meters" {
		t.Errorf("GetDisplayUnits() = %q", cfg.GetDisplayUnits())
	}
}
