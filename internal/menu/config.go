package menu

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

// StatusPolicy decides when an error shown under the page is cleared.
type StatusPolicy string

const (
	// StatusSticky keeps the last error until another error replaces it,
	// even across successful page changes.
	StatusSticky StatusPolicy = "sticky"
	// StatusClearOnSuccess clears the error after any accepted command.
	StatusClearOnSuccess StatusPolicy = "clear"
)

// DefaultKeys is the selector alphabet used by DefaultConfig.
const DefaultKeys = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Config configures a Menu. It is copied by New and never changes after.
//
// The user-facing fields are a fixed set: page_size, keys, next_page_key,
// previous_page_key, first_page_key, last_page_key and default.
type Config struct {
	// PageSize is the number of items per page (at least 2).
	PageSize int `yaml:"page_size"`
	// Keys selects items by position on the page, one rune per item.
	// Only the first PageSize runes are used.
	Keys string `yaml:"keys"`
	// NextPageKey and PreviousPageKey are required.
	NextPageKey     string `yaml:"next_page_key"`
	PreviousPageKey string `yaml:"previous_page_key"`
	// FirstPageKey and LastPageKey are optional; empty disables them.
	FirstPageKey string `yaml:"first_page_key"`
	LastPageKey  string `yaml:"last_page_key"`
	// Default is returned when the user submits an empty command.
	Default any `yaml:"default"`

	StatusPolicy StatusPolicy `yaml:"status_policy"`
	Prompt       string       `yaml:"prompt"`
	IDFunc       IDFunc       `yaml:"-"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		PageSize:        10,
		Keys:            DefaultKeys,
		NextPageKey:     ".",
		PreviousPageKey: ",",
		FirstPageKey:    "<",
		LastPageKey:     ">",
		StatusPolicy:    StatusSticky,
		Prompt:          ">> ",
	}
}

type navKey struct {
	field    string
	label    string
	key      string
	required bool
}

// navKeys lists the navigation keys in legend order.
func (c Config) navKeys() []navKey {
	return []navKey{
		{field: "first_page_key", label: "First", key: c.FirstPageKey},
		{field: "previous_page_key", label: "Previous", key: c.PreviousPageKey, required: true},
		{field: "next_page_key", label: "Next", key: c.NextPageKey, required: true},
		{field: "last_page_key", label: "Last", key: c.LastPageKey},
	}
}

// Validate checks the configuration invariants in order and reports the
// first one that fails.
func (c Config) Validate() error {
	if c.PageSize < 2 {
		return errors.ConfigInvalidError("page_size", "Page size less than 2").
			WithDetails(fmt.Sprintf("page_size is %d", c.PageSize))
	}

	keyCount := utf8.RuneCountInString(c.Keys)
	if keyCount < 2 {
		return errors.ConfigInvalidError("keys", "Less than 2 keys defined").
			WithDetails(fmt.Sprintf("keys is %q", c.Keys))
	}
	if keyCount < c.PageSize {
		return errors.ConfigInvalidError("keys", "Not enough keys for the page size").
			WithDetails(fmt.Sprintf("%d keys for page size %d", keyCount, c.PageSize))
	}

	// Commands are trimmed before they are matched, so blank keys could
	// never be typed.
	if strings.ContainsFunc(c.Keys, unicode.IsSpace) {
		return errors.ConfigInvalidError("keys", "Keys cannot contain whitespace").
			WithDetails(fmt.Sprintf("keys is %q", c.Keys))
	}

	// Collisions are reported next, previous, first, last.
	order := []int{2, 1, 0, 3}
	nav := c.navKeys()
	for _, i := range order {
		k := nav[i]
		if k.key == "" {
			if k.required {
				return errors.ConfigInvalidError(k.field, fmt.Sprintf("%s page key is required", k.label))
			}
			continue
		}
		if strings.TrimSpace(k.key) != k.key {
			return errors.ConfigInvalidError(k.field, fmt.Sprintf("%s page key cannot be whitespace", k.label)).
				WithDetails(fmt.Sprintf("%s is %q", k.field, k.key))
		}
		if strings.Contains(c.Keys, k.key) {
			return errors.ConfigInvalidError(k.field, fmt.Sprintf("%s page key cannot be used as menu key", k.label)).
				WithDetails(fmt.Sprintf("%q is also in keys %q", k.key, c.Keys))
		}
	}

	switch c.StatusPolicy {
	case "", StatusSticky, StatusClearOnSuccess:
	default:
		return errors.ConfigInvalidError("status_policy", "Unknown status policy").
			WithDetails(fmt.Sprintf("status_policy is %q, expected sticky or clear", c.StatusPolicy))
	}

	return nil
}
