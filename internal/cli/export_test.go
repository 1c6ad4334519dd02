package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExport_WritesWorkbook(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.xlsx")
	c := &ExportCommand{
		Output:  dest,
		Args:    InputArgs{Paths: []string{sampleTakeout(t)}},
		globals: &GlobalFlags{},
	}

	var err error
	out := captureOutput(t, func() {
		err = c.executeWith(context.Background(), testConfig(), nopLogger())
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Spreadsheet written to "+dest)

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Overview", "YouTube Watch History", "YouTube Search History"}, f.GetSheetList())
}

func TestExport_PropagatesRunErrors(t *testing.T) {
	c := &ExportCommand{
		Output:  filepath.Join(t.TempDir(), "out.xlsx"),
		Args:    InputArgs{Paths: []string{writeTakeout(t, map[string]string{"x.txt": "x"})}},
		globals: &GlobalFlags{},
	}
	err := c.executeWith(context.Background(), testConfig(), nopLogger())
	assert.Error(t, err)
	assert.NoFileExists(t, c.Output)
}
