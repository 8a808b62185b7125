package config

// Optional YAML config file support. Fields map 1:1 to the yaml tags on
// Config; absent fields keep their current (default) values, so the file
// only needs to name what it changes.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile layers the YAML file at path onto cfg. Unknown keys are
// rejected so typos surface immediately instead of silently keeping a
// default.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}
