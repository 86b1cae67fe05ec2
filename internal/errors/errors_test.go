package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeymenuError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *KeymenuError
		contains []string
	}{
		{
			name:     "simple error",
			err:      &KeymenuError{Type: ConfigInvalid, Message: "Page size less than 2"},
			contains: []string{"Page size less than 2"},
		},
		{
			name: "error with details",
			err: &KeymenuError{
				Type:    ConfigInvalid,
				Message: "Configuration validation failed",
				Details: "menu.page_size: 1",
			},
			contains: []string{"Configuration validation failed", "Details: menu.page_size: 1"},
		},
		{
			name: "error with suggestions",
			err: &KeymenuError{
				Type:        UnsupportedFormat,
				Message:     "Unsupported file format: .toml",
				Suggestions: []string{"Use a .yaml file", "Use a .json file"},
			},
			contains: []string{"Unsupported file format", "Suggestions:", "Use a .yaml file", "Use a .json file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, expected := range tt.contains {
				assert.Contains(t, got, expected)
			}
		})
	}
}

func TestKeymenuError_Unwrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrapped := Wrap(originalErr, InternalError, "Wrapped error")

	assert.Same(t, originalErr, wrapped.Unwrap())
	assert.Equal(t, InternalError, wrapped.Type)
	assert.Equal(t, "Wrapped error", wrapped.Message)
}

func TestNew(t *testing.T) {
	err := New(ConfigNotFound, "Config file missing")

	assert.Equal(t, ConfigNotFound, err.Type)
	assert.Equal(t, "Config file missing", err.Message)
	assert.Nil(t, err.Cause)
}

func TestKeymenuError_Builders(t *testing.T) {
	err := New(ConfigInvalid, "Invalid config").
		WithValue("page_size").
		WithDetails("must be at least 2").
		WithSuggestion("Check syntax").
		WithSuggestions([]string{"Verify fields", "Run init"})

	assert.Equal(t, "page_size", err.Value)
	assert.Equal(t, "must be at least 2", err.Details)
	assert.Equal(t, []string{"Check syntax", "Verify fields", "Run init"}, err.Suggestions)
}

func TestConfigNotFoundError(t *testing.T) {
	path := "/home/user/.config/keymenu/config.yaml"
	err := ConfigNotFoundError(path)

	assert.Equal(t, ConfigNotFound, err.Type)
	assert.Equal(t, path, err.Value)
	assert.Contains(t, err.Error(), "Configuration file not found")
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "keymenu config init")
}

func TestInvalidKeyError(t *testing.T) {
	err := InvalidKeyError("z")

	assert.Equal(t, InvalidKey, err.Type)
	assert.Equal(t, "z", err.Value)
	assert.Equal(t, "Invalid menu key: z", err.Error())
}

func TestConfigInvalidError(t *testing.T) {
	err := ConfigInvalidError("next_page_key", "Next page key cannot be used as menu key")

	assert.Equal(t, ConfigInvalid, err.Type)
	assert.Equal(t, "next_page_key", err.Value)
	assert.Equal(t, "Next page key cannot be used as menu key", err.Error())
}

func TestValidationError(t *testing.T) {
	err := ValidationError("log.level", "loud", "unknown log level")

	assert.Equal(t, ValidationFailed, err.Type)
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestPermissionDeniedError(t *testing.T) {
	err := PermissionDeniedError("/protected/file", "read")

	assert.Equal(t, PermissionDenied, err.Type)
	assert.Contains(t, err.Error(), "/protected/file")
	assert.Contains(t, err.Error(), "read")
}

func TestIsType(t *testing.T) {
	err := New(ConfigInvalid, "Test error")

	assert.True(t, IsType(err, ConfigInvalid))
	assert.False(t, IsType(err, InvalidKey))
	assert.False(t, IsType(fmt.Errorf("generic error"), ConfigInvalid))

	wrapped := fmt.Errorf("loading: %w", InvalidKeyError("q"))
	assert.True(t, IsType(wrapped, InvalidKey))
}

func TestGetType(t *testing.T) {
	assert.Equal(t, ConfigInvalid, GetType(New(ConfigInvalid, "Test error")))
	assert.Equal(t, InternalError, GetType(fmt.Errorf("generic error")))
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", InputClosedError())

	kerr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, InputClosed, kerr.Type)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
