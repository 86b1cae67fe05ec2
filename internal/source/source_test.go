package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/menu"
)

var ignoreID = cmpopts.IgnoreFields(menu.Item{}, "ID")

func TestParseLines(t *testing.T) {
	items, err := ParseLines(strings.NewReader("alpha\n\n  beta  \r\n\t\ngamma"))
	require.NoError(t, err)

	want := []menu.Item{
		{Value: "alpha", Name: "alpha"},
		{Value: "beta", Name: "beta"},
		{Value: "gamma", Name: "gamma"},
	}
	if diff := cmp.Diff(want, items, ignoreID); diff != "" {
		t.Errorf("ParseLines() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, menu.ContentID("alpha"), items[0].ID)
}

func TestParseLines_Empty(t *testing.T) {
	items, err := ParseLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseDocument(t *testing.T) {
	doc := `
- plain
- 42
- value: prod
  name: Production
- value: {region: eu}
  name: Europe
  id: eu-1
`
	items, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	want := []menu.Item{
		{Value: "plain", Name: "plain"},
		{Value: 42, Name: "42"},
		{Value: "prod", Name: "Production"},
		{Value: map[string]any{"region": "eu"}, Name: "Europe", ID: "eu-1"},
	}
	if diff := cmp.Diff(want, items, ignoreID); diff != "" {
		t.Errorf("ParseDocument() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "eu-1", items[3].ID)
	assert.Equal(t, menu.ContentID("prod"), items[2].ID)
}

func TestParseDocument_JSON(t *testing.T) {
	items, err := ParseDocument([]byte(`["a", {"value": "b", "name": "Bee"}]`))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Value)
	assert.Equal(t, "Bee", items[1].Name)
}

func TestParseDocument_Empty(t *testing.T) {
	for _, doc := range []string{"", "---\n", "null", "[]"} {
		items, err := ParseDocument([]byte(doc))
		require.NoError(t, err, doc)
		assert.Empty(t, items, doc)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not a list", "value: x"},
		{"missing value", "- name: nameless"},
		{"broken yaml", "- [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ValidationFailed))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      FormatAuto,
		"auto":  FormatAuto,
		"LINES": FormatLines,
		"yaml":  FormatDocument,
		"json":  FormatDocument,
	}
	for input, want := range tests {
		got, err := ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseFormat("csv")
	assert.True(t, errors.IsType(err, errors.ValidationFailed))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "hosts.txt")
	yml := filepath.Join(dir, "hosts.yml")
	require.NoError(t, os.WriteFile(txt, []byte("- not a list item\n"), 0o644))
	require.NoError(t, os.WriteFile(yml, []byte("- one\n- two\n"), 0o644))

	items, err := Load(txt, FormatAuto)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "- not a list item", items[0].Value)

	items, err = Load(yml, FormatAuto)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = Load(yml, FormatLines)
	require.NoError(t, err)
	assert.Equal(t, "- one", items[0].Value)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), FormatAuto)
	assert.True(t, errors.IsType(err, errors.FileNotFound))
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), "x", Format("csv"))
	assert.True(t, errors.IsType(err, errors.UnsupportedFormat))
}
