package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodFixture = `(module
  (def x (int 32))
  (def main (func main () (int 32)
    (= x 5)
    (return x))))
`

const badFixture = `(module
  (def main (func main () (int 32)
    (= nope 5))))
`

func writeTempFixture(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	return dir
}

func TestCheckCommandPassesOnCleanModule(t *testing.T) {
	dir := writeTempFixture(t, "good.sppfix", goodFixture)

	cmd := NewCheckCommand().CreateCobraCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ok: 1 module(s) checked")
}

func TestCheckCommandFailsOnUnknownSymbol(t *testing.T) {
	dir := writeTempFixture(t, "bad.sppfix", badFixture)

	cmd := NewCheckCommand().CreateCobraCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "UnknownSymbol")
}

func TestBuildCommandEmitsJSONTrace(t *testing.T) {
	dir := writeTempFixture(t, "good.sppfix", goodFixture)

	cmd := NewBuildCommand().CreateCobraCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{dir, "--output", "json"})

	require.NoError(t, cmd.Execute())

	var doc struct {
		Modules []string `json:"modules"`
		Trace   []string `json:"trace"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, []string{"good.sppfix"}, doc.Modules)
	assert.NotEmpty(t, doc.Trace)
}

func TestBuildCommandTextOutputIncludesSummary(t *testing.T) {
	dir := writeTempFixture(t, "good.sppfix", goodFixture)

	cmd := NewBuildCommand().CreateCobraCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{dir, "--no-color"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "varDefinition x")
	assert.Contains(t, errOut.String(), "1 module(s)")
}
