package config

import (
	"encoding/json"
	"maps"
	"os"

	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/menu"
)

// GenerateJSONSchema returns a JSON schema describing the configuration
// file, for editor completion and validation.
func GenerateJSONSchema() ([]byte, error) {
	defaults := Default()
	singleRune := map[string]any{"type": "string", "maxLength": 1}
	optionalRune := map[string]any{"type": "string", "maxLength": 1, "description": "Empty disables the key"}
	with := func(base map[string]any, extra map[string]any) map[string]any {
		out := maps.Clone(base)
		maps.Copy(out, extra)
		return out
	}

	schema := map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "Keymenu Configuration",
		"description":          "Configuration schema for the keymenu paged selection menu",
		"type":                 "object",
		"additionalProperties": false,

		"properties": map[string]any{
			"menu": map[string]any{
				"type":                 "object",
				"description":          "Menu layout and keys",
				"additionalProperties": false,

				"properties": map[string]any{
					"page_size": map[string]any{
						"type":        "integer",
						"minimum":     2,
						"description": "Items per page; no more than the number of keys",
						"default":     defaults.Menu.PageSize,
					},
					"keys": map[string]any{
						"type":        "string",
						"minLength":   2,
						"description": "Selector alphabet, one character per item position",
						"default":     menu.DefaultKeys,
					},
					"next_page_key":     with(singleRune, map[string]any{"default": defaults.Menu.NextPageKey}),
					"previous_page_key": with(singleRune, map[string]any{"default": defaults.Menu.PreviousPageKey}),
					"first_page_key":    with(optionalRune, map[string]any{"default": defaults.Menu.FirstPageKey}),
					"last_page_key":     with(optionalRune, map[string]any{"default": defaults.Menu.LastPageKey}),
					"default": map[string]any{
						"description": "Value returned for an empty command",
					},
					"status_policy": map[string]any{
						"type":        "string",
						"enum":        []string{string(menu.StatusSticky), string(menu.StatusClearOnSuccess)},
						"description": "When an error message under the page is cleared",
						"default":     string(menu.StatusSticky),
					},
					"prompt": map[string]any{
						"type":    "string",
						"default": defaults.Menu.Prompt,
					},
				},
			},

			"log": map[string]any{
				"type":                 "object",
				"description":          "Diagnostic logging",
				"additionalProperties": false,

				"properties": map[string]any{
					"level": map[string]any{
						"type":    "string",
						"enum":    []string{"trace", "debug", "info", "warn", "error", "fatal"},
						"default": defaults.Log.Level,
					},
					"format": map[string]any{
						"type":    "string",
						"enum":    []string{"text", "json"},
						"default": defaults.Log.Format,
					},
					"file": map[string]any{
						"type":        "string",
						"description": "Rotating log file; empty logs to stderr",
					},
					"max_size_mb":  map[string]any{"type": "integer", "minimum": 0, "default": defaults.Log.MaxSizeMB},
					"max_backups":  map[string]any{"type": "integer", "minimum": 0, "default": defaults.Log.MaxBackups},
					"max_age_days": map[string]any{"type": "integer", "minimum": 0, "default": defaults.Log.MaxAgeDays},
				},
			},

			"ui": map[string]any{
				"type":        "string",
				"enum":        []string{string(UIAuto), string(UILine), string(UITerm), string(UIScreen)},
				"description": "Surface the menu is shown on",
				"default":     string(UIAuto),
			},
		},
	}

	return json.MarshalIndent(schema, "", "  ")
}

// SaveJSONSchema saves the JSON schema to a file.
func SaveJSONSchema(filePath string) error {
	schema, err := GenerateJSONSchema()
	if err != nil {
		return errors.Wrap(err, errors.InternalError, "Failed to generate JSON schema")
	}

	if err := os.WriteFile(filePath, schema, 0o644); err != nil {
		return errors.Wrap(err, errors.PermissionDenied, "Failed to write JSON schema").WithValue(filePath)
	}

	return nil
}
