package fixture

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, fs afero.Fs, path, src string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(src), 0o644))
}

func TestLoadDirOrdersModulesByPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, "src/b.sppfix", "(module (def b (int 32)))")
	writeFixture(t, fs, "src/a.sppfix", "(module (def a (int 32)))")
	writeFixture(t, fs, "src/nested/c.sppfix", "(module (def c (int 32)))")
	writeFixture(t, fs, "src/ignored.txt", "not a fixture")

	l := NewLoader(fs)
	modules, err := l.LoadDir("src")
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "a.sppfix", modules[0].Path)
	assert.Equal(t, "b.sppfix", modules[1].Path)
	assert.Equal(t, "nested/c.sppfix", modules[2].Path)
	assert.Equal(t, int64(3), l.Loaded())
}

func TestLoadDirExcludePatterns(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, "src/keep.sppfix", "(module)")
	writeFixture(t, fs, "src/skip/drop.sppfix", "(module)")

	l := NewLoader(fs)
	l.Exclude = []string{"skip/**"}
	modules, err := l.LoadDir("src")
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "keep.sppfix", modules[0].Path)
}

func TestLoadDirAggregatesParseFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, "src/good.sppfix", "(module (def x (int 32)))")
	writeFixture(t, fs, "src/bad.sppfix", "(module (def x")
	writeFixture(t, fs, "src/worse.sppfix", "(not-a-module)")

	l := NewLoader(fs)
	modules, err := l.LoadDir("src")
	require.Error(t, err)
	require.Len(t, modules, 1, "the well-formed file still loads")
	assert.Equal(t, "good.sppfix", modules[0].Path)
	assert.Equal(t, int64(1), l.Loaded())
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, "one.sppfix", "(module (def x (int 32)))")

	l := NewLoader(fs)
	mod, err := l.LoadFile("one.sppfix")
	require.NoError(t, err)
	assert.Equal(t, "one.sppfix", mod.Path)
	require.Len(t, mod.Module.Children, 1)

	_, err = l.LoadFile("missing.sppfix")
	assert.Error(t, err)
}
