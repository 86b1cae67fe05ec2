// Package menu implements a paged selection menu driven by single-key commands.
//
// A Menu shows a fixed number of items per page, each labelled with a key
// from the configured alphabet. Typing a key selects the item at that
// position on the current page; the navigation keys move between pages;
// an empty command returns the configured default.
package menu

import (
	stderrors "errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/output"
)

// NoItemsMessage is rendered in place of a page that has no items.
const NoItemsMessage = "No items to display."

// Menu is one interactive selection session. It is not safe for
// concurrent use.
type Menu struct {
	config     Config
	items      []Item
	keys       []string
	pageSize   int
	page       int
	totalPages int
	status     string
	selected   bool
	value      any
	logger     *output.Logger
}

// New validates config and returns a menu over items. On error no menu
// is returned.
func New(items []Item, config Config) (*Menu, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.StatusPolicy == "" {
		config.StatusPolicy = StatusSticky
	}

	keys := make([]string, 0, len(config.Keys))
	for _, r := range config.Keys {
		keys = append(keys, string(r))
	}
	pageSize := min(config.PageSize, len(keys))

	normalized := make([]Item, len(items))
	for i, item := range items {
		normalized[i] = item.normalized(config.IDFunc)
	}

	return &Menu{
		config:     config,
		items:      normalized,
		keys:       keys[:pageSize],
		pageSize:   pageSize,
		totalPages: (len(normalized) + pageSize - 1) / pageSize,
		value:      config.Default,
		logger:     output.NewDiscardLogger(),
	}, nil
}

// SetLogger sets the logger that receives navigation events.
func (m *Menu) SetLogger(logger *output.Logger) *Menu {
	if logger == nil {
		logger = output.NewDiscardLogger()
	}
	m.logger = logger.WithField("component", "menu")
	return m
}

// Items returns the normalized items in display order.
func (m *Menu) Items() []Item {
	return slices.Clone(m.items)
}

// Keys returns the active selector alphabet.
func (m *Menu) Keys() []string {
	return slices.Clone(m.keys)
}

// PageSize returns the effective number of items per page.
func (m *Menu) PageSize() int { return m.pageSize }

// Page returns the current zero-based page.
func (m *Menu) Page() int { return m.page }

// TotalPages returns the number of pages; zero when there are no items.
func (m *Menu) TotalPages() int { return m.totalPages }

// Status returns the message shown under the next rendered page.
func (m *Menu) Status() string { return m.status }

// Selected reports whether a value has been chosen.
func (m *Menu) Selected() bool { return m.selected }

// Value returns the chosen value, or the default before a selection.
func (m *Menu) Value() any { return m.value }

// PageItems returns the items shown on page. Pages outside the menu
// return an empty slice.
func (m *Menu) PageItems(page int) []Item {
	if page < 0 || page >= m.totalPages {
		return []Item{}
	}
	start := page * m.pageSize
	end := min(start+m.pageSize, len(m.items))
	return m.items[start:end]
}

// DisplayPage renders page as plain text: one "<key>: <name> (<value>)"
// line per item, the navigation legend, the page position and the
// status line when there is one.
func (m *Menu) DisplayPage(page int) string {
	items := m.PageItems(page)
	if len(items) == 0 {
		return NoItemsMessage
	}

	lines := make([]string, 0, len(items)+3)
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %s (%v)", m.keys[i], item.Name, item.Value))
	}
	lines = append(lines, m.legend())
	lines = append(lines, fmt.Sprintf("%d/%d", page+1, m.totalPages))
	if m.status != "" {
		lines = append(lines, m.status)
	}
	return strings.Join(lines, "\n")
}

func (m *Menu) legend() string {
	var parts []string
	for _, k := range m.config.navKeys() {
		if k.key != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", k.key, k.label))
		}
	}
	return strings.Join(parts, " ")
}

// Navigate applies one command. Navigation at either end of the menu is
// a no-op. A command that is neither a navigation key nor a key for an
// item on the current page returns an InvalidKey error naming it. Once a
// value is selected every further command fails with InvalidState.
func (m *Menu) Navigate(command string) error {
	if m.selected {
		return errors.New(errors.InvalidState, "Menu selection already made").
			WithValue(command)
	}

	switch {
	case command == "":
		m.selectValue(m.config.Default, "default")
	case command == m.config.NextPageKey:
		if m.page < m.totalPages-1 {
			m.setPage(m.page+1, command)
		}
	case command == m.config.PreviousPageKey:
		if m.page > 0 {
			m.setPage(m.page-1, command)
		}
	case m.config.FirstPageKey != "" && command == m.config.FirstPageKey:
		m.setPage(0, command)
	case m.config.LastPageKey != "" && command == m.config.LastPageKey:
		if m.totalPages > 0 {
			m.setPage(m.totalPages-1, command)
		}
	default:
		index := slices.Index(m.keys, command)
		items := m.PageItems(m.page)
		if index < 0 || index >= len(items) {
			m.logger.Debug("Rejected menu key", map[string]any{"key": command, "page": m.page})
			return errors.InvalidKeyError(command)
		}
		m.selectValue(items[index].Value, items[index].ID)
	}
	return nil
}

func (m *Menu) setPage(page int, command string) {
	if page == m.page {
		return
	}
	m.logger.Debug("Page changed", map[string]any{"from": m.page, "to": page, "key": command})
	m.page = page
}

func (m *Menu) selectValue(value any, id string) {
	m.selected = true
	m.value = value
	m.logger.Debug("Value selected", map[string]any{"id": id, "page": m.page})
}

// Run renders pages to s and reads commands from it until a value is
// selected. Invalid keys are reported on the next page and do not end
// the session. When the input ends first, Run returns an InputClosed
// error. Each call starts without a selection or status; the current
// page is kept.
func (m *Menu) Run(s Surface) (any, error) {
	m.selected = false
	m.value = m.config.Default
	m.status = ""

	for {
		if err := s.Write(m.DisplayPage(m.page)); err != nil {
			return nil, errors.Wrap(err, errors.InternalError, "Failed to render menu page")
		}

		line, err := s.ReadLine(m.config.Prompt)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				m.logger.Debug("Input closed before selection", map[string]any{"page": m.page})
				return nil, errors.InputClosedError()
			}
			return nil, errors.Wrap(err, errors.InternalError, "Failed to read menu command")
		}

		if err := m.Navigate(strings.TrimSpace(line)); err != nil {
			kerr, ok := errors.As(err)
			if !ok || kerr.Type != errors.InvalidKey {
				return nil, err
			}
			m.status = fmt.Sprintf("Error: %s is not a valid menu key.", kerr.Value)
			continue
		}

		if m.config.StatusPolicy == StatusClearOnSuccess {
			m.status = ""
		}
		if m.selected {
			return m.value, nil
		}
	}
}
