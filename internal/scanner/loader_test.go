package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validVerbsYAML = `
version: "1"
domains:
  cbu:
    description: Client business units
    verbs:
      create:
        description: Create a client business unit
        behavior: crud
        args:
          - name: name
            type: string
            required: true
          - name: jurisdiction
            type: string
            lookup:
              table: jurisdictions
              schema: ref
              search_key: code
              primary_key: id
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadVerbsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "cbu.yaml", validVerbsYAML)

	cfg, err := LoadVerbsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.Version)
	require.Contains(t, cfg.Domains, "cbu")
	require.Contains(t, cfg.Domains["cbu"].Verbs, "create")

	create := cfg.Domains["cbu"].Verbs["create"]
	require.Len(t, create.Args, 2)
	require.NotNil(t, create.Args[1].Lookup)
	assert.Equal(t, "jurisdictions", create.Args[1].Lookup.Table)
}

func TestLoadVerbsFile_SchemaRejectsBadBehavior(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "bad.yaml", `
version: "1"
domains:
  cbu:
    verbs:
      create:
        behavior: telepathic
`)

	_, err := LoadVerbsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verb config invalid")
}

func TestLoadVerbsFile_SchemaRejectsUnknownArgType(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "bad.yaml", `
version: "1"
domains:
  cbu:
    verbs:
      create:
        args:
          - name: x
            type: blob
`)

	_, err := LoadVerbsFile(path)
	require.Error(t, err)
}

func TestLoadVerbsFile_SchemaRequiresVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "bad.yaml", `
domains:
  cbu:
    verbs: {}
`)

	_, err := LoadVerbsFile(path)
	require.Error(t, err)
}

func TestLoadVerbsDir_MergesDomains(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", validVerbsYAML)
	writeConfig(t, dir, "b.yaml", `
version: "1"
domains:
  cbu:
    verbs:
      delete:
        behavior: crud
        args:
          - name: id
            type: uuid
            required: true
  screening:
    verbs:
      check:
        behavior: plugin
`)

	cfg, err := LoadVerbsDir(dir)
	require.NoError(t, err)
	assert.Len(t, cfg.Domains, 2)
	assert.Len(t, cfg.Domains["cbu"].Verbs, 2)
	assert.Contains(t, cfg.Domains["screening"].Verbs, "check")
}

func TestLoadVerbsDir_DuplicateVerbFails(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", validVerbsYAML)
	writeConfig(t, dir, "b.yaml", validVerbsYAML)

	_, err := LoadVerbsDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined twice")
}

func TestLoadVerbsDir_EmptyDirFails(t *testing.T) {
	_, err := LoadVerbsDir(t.TempDir())
	require.Error(t, err)
}

func TestLoadVerbsDir_IgnoresNonYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", validVerbsYAML)
	writeConfig(t, dir, "notes.txt", "not yaml")

	cfg, err := LoadVerbsDir(dir)
	require.NoError(t, err)
	assert.Len(t, cfg.Domains, 1)
}
