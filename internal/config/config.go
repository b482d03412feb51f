// Package config loads jqi's settings: an embedded default YAML document with an optional
// user file merged on top.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// RelativePath is the config file location under the XDG config directories.
const RelativePath = "jqi/config.yaml"

// Config is the merged configuration.
type Config struct {
	App          AppConfig          `yaml:"app"`
	Results      ResultsConfig      `yaml:"results"`
	Autocomplete AutocompleteConfig `yaml:"autocomplete"`
	Editor       EditorConfig       `yaml:"editor"`
}

// AppConfig is display metadata for the CLI.
type AppConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ResultsConfig controls how query output is rendered.
type ResultsConfig struct {
	Format    string `yaml:"format"`
	Indent    int    `yaml:"indent"`
	Highlight bool   `yaml:"highlight"`
	Style     string `yaml:"style"`
}

// AutocompleteConfig controls the suggestion popup.
type AutocompleteConfig struct {
	MaxItems int `yaml:"max_items"`
}

// EditorConfig controls the query line.
type EditorConfig struct {
	InitialQuery string `yaml:"initial_query"`
	MaxHistory   int    `yaml:"max_history"`
}

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded default config.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, errors.New("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the default config with the file at path merged over it. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Merge(&cfg, data); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge decodes data over cfg. Keys absent from data keep their current values.
func Merge(cfg *Config, data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Validate rejects values the rest of the program cannot use.
func (c Config) Validate() error {
	switch strings.ToLower(c.Results.Format) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("results.format: unsupported format %q (want json or yaml)", c.Results.Format)
	}
	if c.Results.Indent < 0 {
		return fmt.Errorf("results.indent must not be negative, got %d", c.Results.Indent)
	}
	if c.Autocomplete.MaxItems < 1 {
		return fmt.Errorf("autocomplete.max_items must be at least 1, got %d", c.Autocomplete.MaxItems)
	}
	if c.Editor.MaxHistory < 1 {
		return fmt.Errorf("editor.max_history must be at least 1, got %d", c.Editor.MaxHistory)
	}
	return nil
}

// Marshal renders cfg as YAML.
func (c Config) Marshal() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}

// ResolvePath picks the config file to load: the explicit path when set, else the first
// jqi/config.yaml found in the XDG config directories. No file found yields "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := xdg.SearchConfigFile(RelativePath)
	if err != nil {
		return ""
	}
	return path
}
