package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "id", cfg.Document.IDKey)
	assert.Equal(t, "cnssi-1253", cfg.Document.ReferencesKey)
	assert.Equal(t, "tags", cfg.Document.TagsKey)
	assert.Equal(t, "cnssi-1253", cfg.Document.TagPrefix)
	assert.Equal(t, []string{".yaml", ".yml"}, cfg.Document.Extensions)
	assert.Equal(t, "supplemental", cfg.Document.ExcludeSubstring)
	assert.Equal(t, ",", cfg.Mapping.Delimiter)
	assert.Equal(t, "800-53", cfg.Mapping.FamilyHint)
}

func TestNewConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `logger:
  level: debug
document:
  references_key: nist-800-53
mapping:
  delimiter: ";"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "nist-800-53", cfg.Document.ReferencesKey)
	assert.Equal(t, ";", cfg.Mapping.Delimiter)
	assert.Equal(t, "tags", cfg.Document.TagsKey, "unset keys keep their defaults")
}

func TestNewConfigRejectsDirectory(t *testing.T) {
	_, err := NewConfig(t.TempDir())
	require.Error(t, err)
}
