package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Utilities.

<api name="greet">
@function
Says hello.
@param name {string} Who to greet.
@returns {string}
</api>
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExecuteHelp(t *testing.T) {
	out, err := run(t, "", "--help")
	require.NoError(t, err)
	for _, sub := range []string{"parse", "render", "build", "validate", "serve"} {
		assert.Contains(t, out, sub)
	}
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, sample, "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"signature": "greet(name)"`)
	assert.Contains(t, out, `"desc": "Utilities.\n\n"`)

	out, err = run(t, sample, "parse", "--format", "yaml", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "signature: greet(name)")

	_, err = run(t, sample, "parse", "--format", "xml", "-")
	assert.Error(t, err)
}

func TestParseCommandToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "greet.md")
	out := filepath.Join(dir, "greet.json")
	require.NoError(t, os.WriteFile(in, []byte(sample), 0o600))

	_, err := run(t, "", "parse", in, "-o", out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "greet"`)

	_, err = run(t, "", "parse", in, "-o", filepath.Join(dir, "missing", "x.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	_, err = run(t, "", "validate", out)
	require.NoError(t, err)
}

func TestParseCommandReportsLine(t *testing.T) {
	_, err := run(t, "<api name=\"x\">\n@property\n</api>\n", "parse", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "missing type")
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "greeting.md")
	require.NoError(t, os.WriteFile(in, []byte(sample), 0o600))

	out, err := run(t, "", "render", in)
	require.NoError(t, err)
	assert.Contains(t, out, `id="greeting_module_api_docs"`)
	assert.Contains(t, out, "greet(name)")

	out, err = run(t, sample, "render", "--page", "--module", "hello", "--markdown", "blackfriday", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>hello</title>")

	_, err = run(t, sample, "render", "--markdown", "pandoc", "-")
	assert.Error(t, err)
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "modules", "greet.md"), []byte(sample), 0o600))

	cfgPath := filepath.Join(dir, "apidoc.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
site:
  title: From File
  source: `+src+`
  output: `+filepath.Join(dir, "ignored")+`
`), 0o600))

	outDir := filepath.Join(dir, "site")
	out, err := run(t, "", "build", "--config", cfgPath, "--output", outDir, "--emit-json")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 modules and 0 guides")
	assert.FileExists(t, filepath.Join(outDir, "modules", "greet.html"))
	assert.FileExists(t, filepath.Join(outDir, "modules", "greet.json"))
	assert.NoDirExists(t, filepath.Join(dir, "ignored"))

	page, err := os.ReadFile(filepath.Join(outDir, "modules", "greet.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>greet - From File</title>")

	out, err = run(t, "", "build", "--config", cfgPath, "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "is up to date")
}

func TestBuildCommandInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "", "build", "--config", filepath.Join(dir, "missing.yml"))
	require.Error(t, err)

	_, err = run(t, "", "build", "--source", dir, "--output", filepath.Join(dir, "out"), "--on-error", "ignore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_error")
}

func TestServeCommandMissingDir(t *testing.T) {
	_, err := run(t, "", "serve", "--dir", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLogFormatFlag(t *testing.T) {
	_, err := run(t, sample, "--log-format", "xml", "parse", "-")
	assert.Error(t, err)
}
