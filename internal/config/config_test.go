package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 64, cfg.Target.PointerBits)
	assert.False(t, cfg.Target.BigEndian)
	assert.Equal(t, []string{"**/*.sppfix"}, cfg.Fixtures.IncludePatterns)
	assert.Equal(t, "text", cfg.Output.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
[target]
pointer_bits = 32
big_endian = true

[fixtures]
include_patterns = ["demo/**/*.sppfix"]
exclude_patterns = ["demo/broken/**"]

[output]
format = "yaml"
color = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Target.PointerBits)
	assert.True(t, cfg.Target.BigEndian)
	assert.Equal(t, []string{"demo/**/*.sppfix"}, cfg.Fixtures.IncludePatterns)
	assert.Equal(t, []string{"demo/broken/**"}, cfg.Fixtures.ExcludePatterns)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"json\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 64, cfg.Target.PointerBits, "unset sections fall back to defaults")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)

	require.NoError(t, os.WriteFile(path, []byte("[target]\npointer_bits = 48\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"csv\"\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestFindConfigFileWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	path := filepath.Join(root, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)

	cfg := DefaultConfig()
	cfg.Target.PointerBits = 32
	cfg.Output.Format = "json"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Target.PointerBits, loaded.Target.PointerBits)
	assert.Equal(t, cfg.Output.Format, loaded.Output.Format)
}
