package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"ugeforge/serialize"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	data := "format: yaml\nsequence_stride: 1\nexport_waves: true\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputFormat() != serialize.FormatYAML || cfg.SequenceStride != 1 || !cfg.ExportWaves {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Workers != 4 || cfg.NoteDuration != 50 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("workers: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for zero workers")
	}
}

func TestConfigGetSet(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		key, value string
		want       interface{}
	}{
		{"output_dir", "build", "build"},
		{"format", "YML", "yaml"},
		{"sequence_stride", "2", 2},
		{"note_duration", "32", 32},
		{"deterministic_ids", "true", true},
		{"export_waves", "1", true},
		{"wave_sample_rate", "22050", 22050},
		{"workers", "8", 8},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatal(err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil || got != tt.want {
				t.Errorf("got %v (%v), want %v", got, err, tt.want)
			}
		})
	}
	if len(tests) != len(Keys()) {
		t.Errorf("test covers %d of %d keys", len(tests), len(Keys()))
	}

	bad := map[string]string{
		"workers":           "many",
		"sequence_stride":   "0",
		"format":            "xml",
		"deterministic_ids": "maybe",
		"colour":            "red",
	}
	for key, value := range bad {
		if err := cfg.Set(key, value); err == nil {
			t.Errorf("Set(%s, %s) should fail", key, value)
		}
	}
	if _, err := cfg.Get("colour"); err == nil {
		t.Error("Get of unknown key should fail")
	}
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.OutputDir = "elsewhere"
	cfg.DeterministicIDs = true
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestTransformOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeterministicIDs = true
	a, b := cfg.TransformOptions(), cfg.TransformOptions()
	if a.NewID() != b.NewID() {
		t.Error("deterministic ids should restart for each conversion")
	}
}
