package cli

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// parseOnly parses args without executing the matched command.
func parseOnly(t *testing.T, args ...string) (*GlobalFlags, *commands, error) {
	t.Helper()
	parser, globals, cmds := buildParser("test")
	parser.CommandHandler = func(goflags.Commander, []string) error { return nil }
	_, err := parser.ParseArgs(args)
	return globals, cmds, err
}

// writeTakeout writes a zip archive with the given files and returns its path.
func writeTakeout(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "takeout.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func sampleTakeout(t *testing.T) string {
	return writeTakeout(t, map[string]string{
		"Takeout/YouTube and YouTube Music/history/watch-history.json": `[
			{"title": "Watched Cat video", "time": "2024-03-01T23:05:00Z"},
			{"title": "Watched Cat video", "time": "2024-03-02T23:45:00Z"},
			{"title": "Watched Dog video", "time": "2024-03-03T09:00:00Z"}
		]`,
		"Takeout/YouTube and YouTube Music/history/search-history.json": `[
			{"title": "Searched for cat facts"},
			{"title": "Searched for cat facts"}
		]`,
	})
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

func nopLogger() logging.Logger {
	return logging.NewNop()
}
