package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 10, config.PageSize)
	assert.Equal(t, DefaultKeys, config.Keys)
	assert.Equal(t, ".", config.NextPageKey)
	assert.Equal(t, ",", config.PreviousPageKey)
	assert.Equal(t, "<", config.FirstPageKey)
	assert.Equal(t, ">", config.LastPageKey)
	assert.Nil(t, config.Default)
	assert.Equal(t, StatusSticky, config.StatusPolicy)
	assert.Equal(t, ">> ", config.Prompt)
	assert.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		message string
	}{
		{
			name:    "page size one",
			mutate:  func(c *Config) { c.PageSize = 1 },
			field:   "page_size",
			message: "Page size less than 2",
		},
		{
			name:    "page size checked before keys",
			mutate:  func(c *Config) { c.PageSize = 0; c.Keys = "" },
			field:   "page_size",
			message: "Page size less than 2",
		},
		{
			name:    "single key",
			mutate:  func(c *Config) { c.PageSize = 2; c.Keys = "a" },
			field:   "keys",
			message: "Less than 2 keys defined",
		},
		{
			name:    "fewer keys than page size",
			mutate:  func(c *Config) { c.PageSize = 5; c.Keys = "abcd" },
			field:   "keys",
			message: "Not enough keys for the page size",
		},
		{
			name:    "next key collides",
			mutate:  func(c *Config) { c.Keys = "abcdefghij." },
			field:   "next_page_key",
			message: "Next page key cannot be used as menu key",
		},
		{
			name:    "previous key collides",
			mutate:  func(c *Config) { c.Keys = "abcdefghij," },
			field:   "previous_page_key",
			message: "Previous page key cannot be used as menu key",
		},
		{
			name:    "first key collides",
			mutate:  func(c *Config) { c.FirstPageKey = "a" },
			field:   "first_page_key",
			message: "First page key cannot be used as menu key",
		},
		{
			name:    "last key collides",
			mutate:  func(c *Config) { c.LastPageKey = "z" },
			field:   "last_page_key",
			message: "Last page key cannot be used as menu key",
		},
		{
			name:    "next reported before previous",
			mutate:  func(c *Config) { c.Keys = "abcdefghij,." },
			field:   "next_page_key",
			message: "Next page key cannot be used as menu key",
		},
		{
			name:    "missing next key",
			mutate:  func(c *Config) { c.NextPageKey = "" },
			field:   "next_page_key",
			message: "Next page key is required",
		},
		{
			name:    "missing previous key",
			mutate:  func(c *Config) { c.PreviousPageKey = "" },
			field:   "previous_page_key",
			message: "Previous page key is required",
		},
		{
			name:    "whitespace in keys",
			mutate:  func(c *Config) { c.PageSize = 2; c.Keys = "a b" },
			field:   "keys",
			message: "Keys cannot contain whitespace",
		},
		{
			name:    "blank next key",
			mutate:  func(c *Config) { c.NextPageKey = " " },
			field:   "next_page_key",
			message: "Next page key cannot be whitespace",
		},
		{
			name:    "tab as last key",
			mutate:  func(c *Config) { c.LastPageKey = "\t" },
			field:   "last_page_key",
			message: "Last page key cannot be whitespace",
		},
		{
			name:    "unknown status policy",
			mutate:  func(c *Config) { c.StatusPolicy = "fade" },
			field:   "status_policy",
			message: "Unknown status policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			require.Error(t, err)

			kerr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ConfigInvalid, kerr.Type)
			assert.Equal(t, tt.field, kerr.Value)
			assert.Equal(t, tt.message, kerr.Message)

			m, err := New(nil, config)
			assert.Nil(t, m)
			assert.True(t, errors.IsType(err, errors.ConfigInvalid))
		})
	}
}

func TestConfig_OptionalKeysMayBeDisabled(t *testing.T) {
	config := DefaultConfig()
	config.FirstPageKey = ""
	config.LastPageKey = ""

	assert.NoError(t, config.Validate())
}

func TestConfig_EmptyStatusPolicyMeansSticky(t *testing.T) {
	config := DefaultConfig()
	config.StatusPolicy = ""

	require.NoError(t, config.Validate())
	_, err := New(nil, config)
	assert.NoError(t, err)
}
