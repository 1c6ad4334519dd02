package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInspect(t *testing.T, c *InspectCommand) (string, error) {
	t.Helper()
	if c.globals == nil {
		c.globals = &GlobalFlags{}
	}
	var err error
	out := captureOutput(t, func() {
		err = c.executeWith()
	})
	return out, err
}

func TestInspect_Table(t *testing.T) {
	path := writeTakeout(t, map[string]string{
		"Takeout/YouTube/history/watch-history.json": `[]`,
		"Takeout/YouTube/history/watch-history.html": `<html></html>`,
		"Takeout/Other/notes.txt":                    "ignored",
	})
	out, err := runInspect(t, &InspectCommand{Args: InputArgs{Paths: []string{path}}})
	require.NoError(t, err)

	assert.Contains(t, out, "Takeout/YouTube/history/watch-history.json")
	assert.Contains(t, out, "Takeout/YouTube/history/watch-history.html")
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "Not found: YouTube Search History")
	assert.Contains(t, out, "Not found: Google Search History")
	assert.Contains(t, out, "Not found: Location History")
}

func TestInspect_JSON(t *testing.T) {
	path := writeTakeout(t, map[string]string{
		"Takeout/YouTube/history/watch-history.json": `[]`,
		"Takeout/YouTube/history/watch-history.html": `<html></html>`,
	})
	out, err := runInspect(t, &InspectCommand{
		Args:    InputArgs{Paths: []string{path}},
		globals: &GlobalFlags{JSON: true},
	})
	require.NoError(t, err)

	var got inspectJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Entries, 2)
	assert.Equal(t, []string{"watch"}, got.Found)
	assert.Equal(t, []string{"search", "query", "location"}, got.NotFound)

	for _, e := range got.Entries {
		assert.Equal(t, e.Format == "json", e.Selected, "JSON wins over HTML for %s", e.Name)
	}
}

func TestInspect_EmptyDirectory(t *testing.T) {
	out, err := runInspect(t, &InspectCommand{Args: InputArgs{Paths: []string{t.TempDir()}}})
	require.NoError(t, err)
	assert.Contains(t, out, "No activity files found.")
	assert.Contains(t, out, "Not found: YouTube Watch History")
}

func TestInspect_LooseFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "search-history.json")
	require.NoError(t, os.WriteFile(file, []byte(`[]`), 0644))

	out, err := runInspect(t, &InspectCommand{Args: InputArgs{Paths: []string{file}}})
	require.NoError(t, err)
	assert.Contains(t, out, "search-history.json")
	assert.NotContains(t, out, "Not found: YouTube Search History")
}
