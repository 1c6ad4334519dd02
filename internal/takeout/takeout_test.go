package takeout

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/runnerr0/kickback/internal/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	watchJSON    = `[{"title": "Watched A", "time": "2024-01-05T22:31:02Z"}, {"title": "Watched B"}]`
	searchJSON   = `[{"title": "Searched for golang"}]`
	queryJSON    = `{"event": [{"subEvent": [{"query": "weather"}, {"query": "news"}]}]}`
	locationJSON = `{"locations": [{}, {}, {}]}`
)

// buildZip writes files into an in-memory zip archive.
func buildZip(t *testing.T, files map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFromZip_LocatesByBaseName(t *testing.T) {
	files := map[string]string{
		"Takeout/YouTube and YouTube Music/history/watch-history.json":  watchJSON,
		"Takeout/YouTube and YouTube Music/history/search-history.json": searchJSON,
		"Takeout/My Activity/Search/MyActivity.json":                    queryJSON,
		"Takeout/Location History/Location History.json":                locationJSON,
		"Takeout/archive_browser.html":                                  "<html></html>",
	}
	order := []string{
		"Takeout/archive_browser.html",
		"Takeout/YouTube and YouTube Music/history/watch-history.json",
		"Takeout/YouTube and YouTube Music/history/search-history.json",
		"Takeout/My Activity/Search/MyActivity.json",
		"Takeout/Location History/Location History.json",
	}
	data := buildZip(t, files, order)

	b, err := FromZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, activity.Categories(), b.Categories())
	assert.Len(t, b.Entries, 4, "unknown files are not listed")

	watch, err := b.Sources[activity.Watch].Records()
	require.NoError(t, err)
	assert.Len(t, watch, 2)

	query, err := b.Sources[activity.Query].Records()
	require.NoError(t, err)
	assert.Len(t, query, 2)

	loc, err := b.Sources[activity.Location].Records()
	require.NoError(t, err)
	assert.Len(t, loc, 3)
}

func TestFromZip_MissingCategoriesAreAbsentNotErrors(t *testing.T) {
	data := buildZip(t, map[string]string{"a/watch-history.json": watchJSON}, []string{"a/watch-history.json"})

	b, err := FromZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.True(t, b.Has(activity.Watch))
	assert.False(t, b.Has(activity.Search))
	assert.Equal(t, []activity.Category{activity.Watch}, b.Categories())

	assert.Nil(t, b.Missing([]activity.Category{activity.Watch}))
	missing := b.Missing([]activity.Category{activity.Watch, activity.Search, activity.Location})
	require.NotNil(t, missing)
	assert.Equal(t, []activity.Category{activity.Search, activity.Location}, missing.Categories)
	assert.Contains(t, missing.Error(), "could not find expected files")
	assert.Contains(t, missing.Error(), "search-history.json or search-history.html (YouTube Search History)")
	assert.Contains(t, missing.Error(), "Location History.json or Semantic Location History.json")
}

func TestFromZip_PrefersJSONOverHTML(t *testing.T) {
	order := []string{"x/watch-history.html", "x/watch-history.json"}
	data := buildZip(t, map[string]string{
		"x/watch-history.html": `<div class="content-cell">Watched <a>H</a><br></div>`,
		"x/watch-history.json": watchJSON,
	}, order)

	b, err := FromZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	src := b.Sources[activity.Watch]
	assert.Equal(t, FormatJSON, src.Format)
	assert.Equal(t, "x/watch-history.json", src.Name)
	require.Len(t, b.Entries, 2)
	assert.False(t, b.Entries[0].Selected)
	assert.True(t, b.Entries[1].Selected)
}

func TestFromZip_HTMLOnly(t *testing.T) {
	order := []string{"x/search-history.html"}
	data := buildZip(t, map[string]string{
		"x/search-history.html": `<div class="outer-cell"><div class="content-cell">Searched for <a>cats</a><br>Jan 5, 2024, 10:31:02 PM UTC<br></div></div>`,
	}, order)

	b, err := FromZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	records, err := b.Sources[activity.Search].Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cats", records[0].Label)
	assert.Equal(t, 22, records[0].Time.Hour())
}

func TestFromZip_PrefersSearchActivityFolder(t *testing.T) {
	order := []string{"Takeout/My Activity/YouTube/MyActivity.json", "Takeout/My Activity/Search/MyActivity.json"}
	data := buildZip(t, map[string]string{
		order[0]: `{"event": []}`,
		order[1]: queryJSON,
	}, order)

	b, err := FromZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, order[1], b.Sources[activity.Query].Name)
}

func TestFromZip_FirstOfEqualsWins(t *testing.T) {
	order := []string{"one/watch-history.json", "two/watch-history.json"}
	data := buildZip(t, map[string]string{order[0]: watchJSON, order[1]: `[]`}, order)

	b, err := FromZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "one/watch-history.json", b.Sources[activity.Watch].Name)
}

func TestFromZip_NotAZip(t *testing.T) {
	data := []byte("definitely not a zip")
	_, err := FromZip(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestSourceRecords_MalformedJSON(t *testing.T) {
	order := []string{"watch-history.json"}
	data := buildZip(t, map[string]string{"watch-history.json": "{not json"}, order)

	b, err := FromZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	records, err := b.Sources[activity.Watch].Records()
	assert.Error(t, err)
	assert.Empty(t, records)
}

func TestOpen_ZipFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "takeout-20240101.zip")
	data := buildZip(t, map[string]string{"Takeout/watch-history.json": watchJSON}, []string{"Takeout/watch-history.json"})
	require.NoError(t, os.WriteFile(zipPath, data, 0644))

	b, err := Open(zipPath)
	require.NoError(t, err)
	defer func() { assert.NoError(t, b.Close()) }()

	records, err := b.Sources[activity.Watch].Records()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestOpen_ExtractedDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Takeout", "YouTube", "history", "watch-history.json"), watchJSON)
	writeFile(t, filepath.Join(dir, "Takeout", "YouTube", "history", "search-history.json"), searchJSON)
	writeFile(t, filepath.Join(dir, "Takeout", "notes.txt"), "ignored")

	b, err := Open(dir)
	require.NoError(t, err)

	assert.Equal(t, []activity.Category{activity.Watch, activity.Search}, b.Categories())
	assert.Len(t, b.Entries, 2)
}

func TestOpen_LooseFiles(t *testing.T) {
	dir := t.TempDir()
	watch := filepath.Join(dir, "watch-history.json")
	loc := filepath.Join(dir, "Semantic Location History.json")
	writeFile(t, watch, watchJSON)
	writeFile(t, loc, locationJSON)

	b, err := Open(watch, loc)
	require.NoError(t, err)
	assert.Equal(t, []activity.Category{activity.Watch, activity.Location}, b.Categories())
}

func TestOpen_UnknownFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "notes.json")
	writeFile(t, p, "{}")

	_, err := Open(p)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a zip archive")
}

func TestOpen_MissingPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.zip"))
	assert.Error(t, err)
}

func TestErrorsAreMatchable(t *testing.T) {
	var err error = &MissingInputError{Categories: []activity.Category{activity.Query}}
	wrapped := errors.Join(ErrNothingToSummarize, err)

	assert.True(t, errors.Is(wrapped, ErrNothingToSummarize))
	var mie *MissingInputError
	require.True(t, errors.As(wrapped, &mie))
	assert.Equal(t, []activity.Category{activity.Query}, mie.Categories)
	assert.Equal(t, []string{"MyActivity.json"}, ExpectedFiles(activity.Query))
}
