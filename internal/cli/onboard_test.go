package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetRequestJSON = `{
  "entity_type": {
    "fqn": "entity.test-widget",
    "name": "Test Widget",
    "domain": "entity"
  },
  "taxonomy_fqns": ["taxonomy.entity"],
  "dry_run": true
}`

const widgetRequestYAML = `
entity_type:
  fqn: entity.test-widget
  name: Test Widget
  domain: entity
taxonomy_fqns:
  - taxonomy.entity
dry_run: true
`

func writeRequestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRequest_JSON(t *testing.T) {
	req, err := loadRequest(writeRequestFile(t, "widget.json", widgetRequestJSON))
	require.NoError(t, err)

	assert.Equal(t, "entity.test-widget", req.EntityType.FQN)
	assert.Equal(t, "Test Widget", req.EntityType.Name)
	assert.Equal(t, []string{"taxonomy.entity"}, req.TaxonomyFQNs)
	assert.True(t, req.DryRun)
}

func TestLoadRequest_YAMLMatchesJSON(t *testing.T) {
	fromJSON, err := loadRequest(writeRequestFile(t, "widget.json", widgetRequestJSON))
	require.NoError(t, err)

	fromYAML, err := loadRequest(writeRequestFile(t, "widget.yaml", widgetRequestYAML))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
}

func TestLoadRequest_UnsupportedExtension(t *testing.T) {
	_, err := loadRequest(writeRequestFile(t, "widget.toml", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported request format")
}

func TestLoadRequest_MalformedJSON(t *testing.T) {
	_, err := loadRequest(writeRequestFile(t, "widget.json", "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget.json")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad request")))
	assert.Equal(t, ExitCommandError,
		GetExitCode(WrapExitError(ExitCommandError, "outer", assert.AnError)))
}
