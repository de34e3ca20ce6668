package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with a fresh command tree and returns stdout.
func run(t *testing.T, configDir, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config-dir", configDir}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "10,10.5,\"10\",\n", "parse")
	require.NoError(t, err)
	assert.Equal(t, `[[{"int":10},{"float":10.5},{"string":"10"},null]]`+"\n", out)
}

func TestParseCmd_TrimFlag(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "  5 ,x\n", "parse", "--trim")
	require.NoError(t, err)
	assert.Equal(t, `[[{"int":5},{"string":"x"}]]`+"\n", out)

	out, err = run(t, dir, "  5 ,x\n", "parse")
	require.NoError(t, err)
	assert.Equal(t, `[[{"string":"  5 "},{"string":"x"}]]`+"\n", out)
}

func TestParseCmd_TrimFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tablecsv.yaml"), []byte("trim: true\n"), 0o644))

	out, err := run(t, dir, " 7 \n", "parse")
	require.NoError(t, err)
	assert.Equal(t, `[[{"int":7}]]`+"\n", out)
}

func TestParseCmd_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,1\n"), 0o644))

	out, err := run(t, dir, "", "parse", path)
	require.NoError(t, err)
	assert.Equal(t, `[[{"string":"a"},{"int":1}]]`+"\n", out)

	_, err = run(t, dir, "", "parse", filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestFormatCmd(t *testing.T) {
	dir := t.TempDir()
	input := `[[{"string":"Leno, Jay"},{"int":10}],[{"string":"Conan \"Conando\" O'Brien"},{"string":"11:35"}]]`

	out, err := run(t, dir, input, "format")
	require.NoError(t, err)
	assert.Equal(t, "\"Leno, Jay\",10\n\"Conan \"\"Conando\"\" O'Brien\",11:35\n", out)
}

func TestFormatCmd_InvalidJSON(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, `[[{"bool":true}]]`, "format")
	assert.Error(t, err)
}

func TestImportExportListDelete(t *testing.T) {
	dir := t.TempDir()
	input := "\"Leno, Jay\",10\n\"3\",3.0,\n"

	out, err := run(t, dir, input, "import", "--name", "hosts", "-")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)
	assert.FileExists(t, filepath.Join(dir, "tables.db"))

	out, err = run(t, dir, "", "export", id)
	require.NoError(t, err)
	assert.Equal(t, input, out)

	out, err = run(t, dir, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "hosts")

	_, err = run(t, dir, "", "delete", id)
	require.NoError(t, err)

	_, err = run(t, dir, "", "export", id)
	assert.Error(t, err)
}

func TestImportCmd_DefaultNameAndDatabaseFlag(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Alice,30\n"), 0o644))
	dbPath := filepath.Join(dir, "custom", "other.db")

	_, err := run(t, dir, "", "import", "--database", dbPath, csvPath)
	require.NoError(t, err)
	assert.FileExists(t, dbPath)

	out, err := run(t, dir, "", "list", "--database", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "people.csv")
}

func TestInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "version", "--log-level", "loud")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tablecsv dev\n", out)
}
