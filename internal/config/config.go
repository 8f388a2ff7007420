// oasnotes - OpenAPI release notes generator for CI pipelines
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/oasnotes

// Package config provides layered configuration for oasnotes using koanf.
// Values are resolved with priority: command-line overrides > environment
// variables (OASNOTES_*) > project config (.oasnotes.yml) > defaults. The
// legacy .oasnotes.json format is still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as config keys.
const EnvPrefix = "OASNOTES_"

// Configuration represents the oasnotes configuration
type Configuration struct {
	// PreviousSpec is the baseline spec; it is replaced by CurrentSpec after a roll.
	PreviousSpec string `koanf:"previous_spec" yaml:"previous_spec" validate:"required"`
	CurrentSpec  string `koanf:"current_spec" yaml:"current_spec" validate:"required,nefield=PreviousSpec"`
	Output       string `koanf:"output" yaml:"output" validate:"required,nefield=PreviousSpec,nefield=CurrentSpec"`

	// IgnoredFields lists leaf keys whose changes are logged but left out of the notes.
	// An explicit empty list ignores nothing.
	IgnoredFields []string `koanf:"ignored_fields" yaml:"ignored_fields" validate:"dive,required"`

	// Roll replaces the previous spec with the current one after notes are written.
	Roll bool `koanf:"roll" yaml:"roll"`

	// BaselineRef reads the previous spec from this git revision instead of
	// the working tree. Rolling is skipped when it is set.
	BaselineRef string `koanf:"baseline_ref" yaml:"baseline_ref"`
	GitDir      string `koanf:"git_dir" yaml:"git_dir"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .oasnotes.yml).
	// An explicit path must exist.
	ProjectConfigPath string
	// Overrides are applied last, typically from command-line flags.
	Overrides map[string]any
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from the project file and environment.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying override %s: %w", key, err)
		}
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project config (YAML preferred, legacy JSON supported).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s not found", customPath)
		}
		if strings.HasSuffix(customPath, ".json") {
			return loadLegacyJSONConfig(k, customPath, warningWriter, skipWarnings)
		}
		return loadYAMLConfig(k, customPath)
	}

	projectYAMLPath := ProjectConfigPath()
	legacyProjectPath := LegacyProjectConfigPath()

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath); err != nil {
			return err
		}
		if legacyProjectExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyProjectPath, projectYAMLPath)
			fmt.Fprintf(warningWriter, "  Run 'oasnotes config migrate' to remove the legacy file.\n\n")
		}
	} else if legacyProjectExists {
		return loadLegacyJSONConfig(k, legacyProjectPath, warningWriter, skipWarnings)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("loading legacy config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'oasnotes config migrate' to migrate to YAML format.\n\n")
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.IgnoredFields == nil {
		cfg.IgnoredFields = []string{}
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// List keys take a comma-separated value.
// Example: OASNOTES_IGNORED_FIELDS=description,summary -> ignored_fields
func envTransform(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if key == "ignored_fields" {
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	fields := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}
