// Package source reads menu items from plain text lines or YAML/JSON documents.
package source

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/menu"
)

// Stdin is the path that reads items from standard input.
const Stdin = "-"

// Format selects how an item file is parsed.
type Format string

const (
	// FormatAuto picks FormatDocument for .yaml, .yml and .json files and
	// FormatLines for everything else, including standard input.
	FormatAuto     Format = "auto"
	FormatLines    Format = "lines"
	FormatDocument Format = "yaml"
)

// ParseFormat maps a flag value to a Format. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatLines, FormatDocument:
		return f, nil
	case "json", "yml":
		return FormatDocument, nil
	}
	return FormatAuto, errors.ValidationError("format", s, "expected one of auto, lines, yaml")
}

const maxLineSize = 1024 * 1024

// ParseLines returns one string item per non-blank line, trimmed of
// surrounding whitespace, in input order.
func ParseLines(r io.Reader) ([]menu.Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	list := menu.NewItemList()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		list.Values(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.InternalError, "Failed to read items")
	}
	return list.Build(nil), nil
}

// entry is the mapping form of a document item.
type entry struct {
	Value *yaml.Node `yaml:"value"`
	Name  string     `yaml:"name"`
	ID    string     `yaml:"id"`
}

// ParseDocument reads a YAML or JSON sequence. Each element is either a
// scalar, used as a bare value, or a mapping with a required value key
// and optional name and id keys. An empty document has no items.
func ParseDocument(data []byte) ([]menu.Item, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return []menu.Item{}, nil
		}
		return nil, errors.Wrap(err, errors.ValidationFailed, "Invalid item document").
			WithDetails(fmt.Sprintf("Parse error: %v", err))
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return []menu.Item{}, nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return []menu.Item{}, nil
	}
	if doc.Kind != yaml.SequenceNode {
		return nil, errors.ValidationError("items", doc.ShortTag(), "the document must be a list").
			WithSuggestion("Write one list entry per item, for example '- value: prod'")
	}

	list := menu.NewItemList()
	for i, node := range doc.Content {
		if node.Kind != yaml.MappingNode {
			var value any
			if err := node.Decode(&value); err != nil {
				return nil, itemError(i, node, err)
			}
			list.Values(value)
			continue
		}

		var e entry
		if err := node.Decode(&e); err != nil {
			return nil, itemError(i, node, err)
		}
		if e.Value == nil {
			return nil, errors.ValidationError(fmt.Sprintf("items[%d].value", i), "", "value is required").
				WithDetails(fmt.Sprintf("Line %d: mapping entries need a value key", node.Line))
		}
		var value any
		if err := e.Value.Decode(&value); err != nil {
			return nil, itemError(i, e.Value, err)
		}
		list.Identified(menu.IdentifiedValue{Value: value, Name: e.Name, ID: e.ID})
	}
	return list.Build(nil), nil
}

func itemError(index int, node *yaml.Node, err error) error {
	return errors.Wrap(err, errors.ValidationFailed, fmt.Sprintf("Invalid item %d", index)).
		WithDetails(fmt.Sprintf("Line %d: %v", node.Line, err))
}

// Load reads items from path, or from standard input when path is "-".
func Load(path string, format Format) ([]menu.Item, error) {
	if path == Stdin {
		return Read(os.Stdin, path, format)
	}

	file, err := os.Open(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, errors.FileNotFoundError(path)
		case os.IsPermission(err):
			return nil, errors.PermissionDeniedError(path, "read")
		}
		return nil, errors.Wrap(err, errors.InternalError, "Failed to open item file").WithValue(path)
	}
	defer file.Close()

	return Read(file, path, format)
}

// Read parses items from r. name is only used to resolve FormatAuto.
func Read(r io.Reader, name string, format Format) ([]menu.Item, error) {
	if format == "" || format == FormatAuto {
		format = detect(name)
	}

	switch format {
	case FormatLines:
		return ParseLines(r)
	case FormatDocument:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, errors.InternalError, "Failed to read items").WithValue(name)
		}
		return ParseDocument(data)
	}
	return nil, errors.UnsupportedFormatError(name, string(format))
}

func detect(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return FormatDocument
	}
	return FormatLines
}
