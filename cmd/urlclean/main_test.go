package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlclean/internal/rules"
)

func TestWriteDefaultRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "rules.json")

	require.NoError(t, writeDefaultRules(path))

	got, err := rules.Store{Path: path}.Read()
	require.NoError(t, err)
	assert.Equal(t, rules.Default(), got)

	// Refuses to overwrite.
	assert.Error(t, writeDefaultRules(path))
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "configs", "urlclean.toml")

	require.NoError(t, writeDefaultConfig(path, "./configs/rules.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `file = "./configs/rules.json"`)
	assert.Contains(t, string(data), "[output]")

	// Refuses to overwrite.
	assert.Error(t, writeDefaultConfig(path, "./configs/rules.json"))
}
