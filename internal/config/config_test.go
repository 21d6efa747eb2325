package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Languages)
	assert.Empty(t, cfg.ExcludeDirs)
	assert.Empty(t, cfg.StorePath)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ReadsYaml(t *testing.T) {
	dir := t.TempDir()
	content := `languages:
  - python
  - go
excludeDirs:
  - generated
storePath: .bigo.db
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bigo.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "go"}, cfg.Languages)
	assert.Equal(t, []string{"generated"}, cfg.ExcludeDirs)
	assert.Equal(t, ".bigo.db", cfg.StorePath)
	assert.True(t, cfg.Verbose)
}

func TestLoad_YamlExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bigo.yaml"), []byte("verbose: true\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_MalformedYamlFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bigo.yml"), []byte("languages: [unclosed\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
