package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: "1"
name: community-pack
dashboards:
  - id: fleet
    title: Fleet
    widgets:
      - id: fleet-status
        kind: console.widget.module_status
        title: Fleet Modules
        size: large
widgets:
  - code: community.widget.metrics
    name: Community Metrics
    description: Shows metrics pushed by the community pack.
    category: community
    schema:
      type: object
      properties:
        range:
          type: string
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Dashboards, 1)
	require.Len(t, doc.Widgets, 1)

	board := doc.Dashboards[0]
	assert.Equal(t, "fleet", board.ID)
	require.Len(t, board.Widgets, 1)
	assert.Equal(t, "fleet-status", board.Widgets[0].ID)
	assert.Equal(t, WidgetModuleStatus, board.Widgets[0].Kind)
	assert.Equal(t, SizeLarge, board.Widgets[0].Size)

	def := doc.Widgets[0]
	assert.Equal(t, "community.widget.metrics", def.Code)
	assert.Equal(t, "Community Metrics", def.Name)
	assert.Equal(t, "community", def.Category)
}

func TestDecodeManifestRejectsDuplicates(t *testing.T) {
	const payload = `
version: "1"
dashboards:
  - id: fleet
    title: Fleet
    widgets:
      - id: a
        kind: console.widget.module_status
      - id: a
        kind: console.widget.user_stats
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate widget id")
}

func TestDecodeManifestRejectsUnknownVersion(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("version: \"9\"\n"))
	require.Error(t, err)
}

func TestRegistryLoadManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	const payload = `
version: "1"
widgets:
  - code: acme.widget.inventory
    name: Inventory
`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	reg := NewRegistry()
	doc, err := reg.LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	def, ok := reg.Definition("acme.widget.inventory")
	require.True(t, ok)
	assert.Equal(t, "Inventory", def.Name)
}
