package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

// Load starts from Default and overlays each file in paths in order.
// Files that do not exist are skipped. Only the options a file sets are
// changed, so later files refine earlier ones. The merged result is
// validated before it is returned.
func Load(paths ...string) (*Config, error) {
	config := Default()

	for _, path := range paths {
		if path == "" || !fileExists(path) {
			continue
		}
		if err := overlay(config, path); err != nil {
			return nil, err
		}
		config.Sources = append(config.Sources, path)
	}

	if err := config.Validate(); err != nil {
		if kerr, ok := errors.As(err); ok && kerr.Details == "" && len(config.Sources) > 0 {
			kerr.WithDetails(fmt.Sprintf("Merged from: %s", strings.Join(config.Sources, ", ")))
		}
		return nil, err
	}

	return config, nil
}

// overlay decodes one file on top of config.
func overlay(config *Config, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
	default:
		return errors.UnsupportedFormatError(path, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return errors.PermissionDeniedError(path, "read")
		}
		return errors.Wrap(err, errors.ConfigNotFound, "Failed to read configuration file").
			WithValue(path).
			WithDetails(fmt.Sprintf("Path: %s", path)).
			WithSuggestion("Check file permissions and path")
	}

	// JSON documents are valid YAML, so one decoder serves all three
	// extensions.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, errors.ConfigInvalid, "Invalid configuration file").
			WithValue(path).
			WithDetails(fmt.Sprintf("Parse error: %v", err)).
			WithSuggestions([]string{
				"Check YAML syntax",
				"Validate indentation",
				"Ensure proper field names",
				"Run 'keymenu config validate' for detailed validation",
			})
	}
	return nil
}

// Save writes the configuration to the specified path as YAML.
func Save(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Wrap(err, errors.PermissionDenied, "Cannot create config directory").
			WithDetails(fmt.Sprintf("Path: %s", filepath.Dir(configPath)))
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, errors.InternalError, "Failed to serialize configuration")
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.Wrap(err, errors.PermissionDenied, "Cannot write configuration file").
			WithDetails(fmt.Sprintf("Path: %s", configPath))
	}

	return nil
}

// ValidateFile loads a single configuration file on top of the defaults.
// Unlike Load it fails when the file is missing.
func ValidateFile(configPath string) (*Config, error) {
	if !fileExists(configPath) {
		return nil, errors.ConfigNotFoundError(configPath)
	}
	return Load(configPath)
}
