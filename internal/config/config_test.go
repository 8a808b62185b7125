package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/srv/taxi", "/srv/taxi"},
		{"single trailing slash", "/srv/taxi/", "/srv/taxi"},
		{"multiple trailing slashes", "/srv/taxi///", "/srv/taxi"},
		{"root path", "/", "/"},
		{"relative path", "data", "data"},
		{"relative with slash", "data/", "data"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ChartFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  ChartFormat
		wantErr bool
	}{
		{"png is valid", ChartPNG, false},
		{"svg is valid", ChartSVG, false},
		{"pdf is valid", ChartPDF, false},
		{"empty is invalid", "", true},
		{"jpeg is invalid", "jpeg", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.ChartFormat = tt.format
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DurationBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"defaults", 1, 1440, false},
		{"zero min keeps sub-minute trips", 0, 1440, false},
		{"negative min", -1, 1440, true},
		{"max below min", 10, 5, true},
		{"max equal min", 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.MinDurationMinutes = tt.min
			cfg.MaxDurationMinutes = tt.max
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_QuantileCap(t *testing.T) {
	tests := []struct {
		name    string
		cap     float64
		wantErr bool
	}{
		{"default", 0.95, false},
		{"disabled", 0, false},
		{"negative", -0.1, true},
		{"one is invalid", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.ChartQuantileCap = tt.cap
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ChartPathFollowsFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChartFormat = ChartSVG
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got, want := cfg.ChartPath, "cost_per_minute_by_rate_code.svg"; got != want {
		t.Errorf("ChartPath = %q, want %q", got, want)
	}

	cfg = DefaultConfig()
	cfg.ChartFormat = ChartSVG
	cfg.ChartPath = "out/custom.png"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want extension mismatch error for explicit path")
	}
}

func TestValidate_RequiresDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for empty data dir")
	}
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() in check mode = %v, want nil", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faremeter.yaml")
	content := `
data_dir: /srv/taxi/2024
min_duration_minutes: 2
known_rate_codes_only: false
chart_path: out/boxplot.png
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.DataDir != "/srv/taxi/2024" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.MinDurationMinutes != 2 {
		t.Errorf("MinDurationMinutes = %v", cfg.MinDurationMinutes)
	}
	if cfg.KnownRateCodesOnly {
		t.Error("KnownRateCodesOnly = true, want false")
	}
	if cfg.ChartPath != "out/boxplot.png" {
		t.Errorf("ChartPath = %q", cfg.ChartPath)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxDurationMinutes != 1440 {
		t.Errorf("MaxDurationMinutes = %v, want default 1440", cfg.MaxDurationMinutes)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faremeter.yaml")
	if err := os.WriteFile(path, []byte("data_dirr: oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("LoadFile = nil, want error for unknown key")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile = nil, want error for missing file")
	}
}

func TestLoadFile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Errorf("LoadFile on empty file = %v, want nil", err)
	}
}
