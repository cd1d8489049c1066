package serialize

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"ugeforge/sound"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

func (f Format) Extension() string {
	if f == FormatYAML {
		return ".sound.yaml"
	}
	return ".sound.json"
}

func WriteJSON(w io.Writer, sd sound.SoundData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(sd))
}

func WriteYAML(w io.Writer, sd sound.SoundData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sd); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(enc.Close())
}

func Write(w io.Writer, sd sound.SoundData, f Format) error {
	if f == FormatYAML {
		return WriteYAML(w, sd)
	}
	return WriteJSON(w, sd)
}

// WriteFile writes sd next to the other outputs in dir, named after base
// with the format's extension, and returns the path.
func WriteFile(dir, base string, sd sound.SoundData, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}
	path := filepath.Join(dir, base+f.Extension())
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	if err := Write(file, sd, f); err != nil {
		file.Close()
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, errors.Wrapf(file.Close(), "close %s", path)
}

// ReadFile loads sound data written by WriteFile. The format follows the
// file extension.
func ReadFile(path string) (sound.SoundData, error) {
	var sd sound.SoundData
	data, err := os.ReadFile(path)
	if err != nil {
		return sd, errors.Wrapf(err, "read %s", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &sd)
	} else {
		err = json.Unmarshal(data, &sd)
	}
	return sd, errors.Wrapf(err, "decode %s", path)
}
