package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"ugeforge/serialize"
	"ugeforge/sound"
	"ugeforge/transform"
)

const ConfigFileName = "ugeforge.yaml"

type Config struct {
	OutputDir        string `yaml:"output_dir"`
	Format           string `yaml:"format"`
	SequenceStride   int    `yaml:"sequence_stride"`
	NoteDuration     int    `yaml:"note_duration"`
	DeterministicIDs bool   `yaml:"deterministic_ids"`
	ExportWaves      bool   `yaml:"export_waves"`
	WaveSampleRate   int    `yaml:"wave_sample_rate"`
	Workers          int    `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir:      "out",
		Format:         string(serialize.FormatJSON),
		SequenceStride: 4,
		NoteDuration:   sound.DefaultNoteDuration,
		WaveSampleRate: serialize.DefaultWaveRate,
		Workers:        4,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write %s", path)
}

func (c *Config) Validate() error {
	if _, err := serialize.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.SequenceStride < 1 {
		return fmt.Errorf("sequence_stride must be at least 1, got %d", c.SequenceStride)
	}
	if c.NoteDuration < 1 {
		return fmt.Errorf("note_duration must be at least 1, got %d", c.NoteDuration)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.WaveSampleRate < 1 {
		return fmt.Errorf("wave_sample_rate must be positive, got %d", c.WaveSampleRate)
	}
	return nil
}

func (c *Config) OutputFormat() serialize.Format {
	f, err := serialize.ParseFormat(c.Format)
	if err != nil {
		return serialize.FormatJSON
	}
	return f
}

// TransformOptions builds converter options. Each call with deterministic ids
// starts a fresh id sequence.
func (c *Config) TransformOptions() transform.Options {
	opts := transform.Options{
		SequenceStride: c.SequenceStride,
		NoteDuration:   c.NoteDuration,
		NewID:          sound.RandomIDs(),
	}
	if c.DeterministicIDs {
		opts.NewID = sound.SequentialIDs("id")
	}
	return opts
}

func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "output_dir":
		return c.OutputDir, nil
	case "format":
		return c.Format, nil
	case "sequence_stride":
		return c.SequenceStride, nil
	case "note_duration":
		return c.NoteDuration, nil
	case "deterministic_ids":
		return c.DeterministicIDs, nil
	case "export_waves":
		return c.ExportWaves, nil
	case "wave_sample_rate":
		return c.WaveSampleRate, nil
	case "workers":
		return c.Workers, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set parses a CLI string value into the field named by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "output_dir":
		c.OutputDir = value
	case "format":
		f, err := serialize.ParseFormat(value)
		if err != nil {
			return err
		}
		c.Format = string(f)
	case "sequence_stride":
		return setInt(&c.SequenceStride, key, value, 1)
	case "note_duration":
		return setInt(&c.NoteDuration, key, value, 1)
	case "wave_sample_rate":
		return setInt(&c.WaveSampleRate, key, value, 1)
	case "workers":
		return setInt(&c.Workers, key, value, 1)
	case "deterministic_ids":
		return setBool(&c.DeterministicIDs, key, value)
	case "export_waves":
		return setBool(&c.ExportWaves, key, value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string, min int) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected numeric value for %s, got: %s", key, value)
	}
	if v < min {
		return fmt.Errorf("%s must be at least %d, got %d", key, min, v)
	}
	*dst = v
	return nil
}

func setBool(dst *bool, key, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("expected 'true' or 'false' for %s, got: %s", key, value)
	}
	*dst = v
	return nil
}

// Keys lists the settable config keys in file order.
func Keys() []string {
	return []string{
		"output_dir", "format", "sequence_stride", "note_duration",
		"deterministic_ids", "export_waves", "wave_sample_rate", "workers",
	}
}
