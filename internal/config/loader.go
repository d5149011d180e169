package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"axons/internal/plasticity"
)

// Load reads AppConfig from a YAML file at path, applying defaults for any
// zero-valued section before validating. Grounded on the teacher's
// internal/config/loader.go file-then-validate pipeline, trimmed to this
// system's single YAML source (no env-var overlay chain: axons has no
// multi-region/multi-account deployment topology to layer configuration
// over).
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadPlasticityConfig reads C1's on-disk configuration document (spec
// §4.3.6, §6.4: a flat key/value JSON document, enums as strings, callbacks
// omitted) and rebuilds it via plasticity.FromMap.
func LoadPlasticityConfig(path string) (*plasticity.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plasticity config %s: %w", path, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing plasticity config %s: %w", path, err)
	}
	return plasticity.FromMap(m), nil
}

// SavePlasticityConfig writes cfg's ToMap() projection to path as indented
// JSON, the inverse of LoadPlasticityConfig.
func SavePlasticityConfig(path string, cfg *plasticity.Config) error {
	data, err := json.MarshalIndent(cfg.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling plasticity config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
