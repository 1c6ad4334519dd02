// Package takeout locates known activity logs in Takeout archives,
// extracted Takeout directories and loose export files.
package takeout

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/runnerr0/kickback/internal/activity"
)

// Format is the encoding of an activity file.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// MaxEntrySize caps how much of a single activity file is read.
const MaxEntrySize int64 = 1 << 30

// ErrEntryTooLarge is returned by Source.Records for files over MaxEntrySize.
var ErrEntryTooLarge = errors.New("activity file exceeds size limit")

type knownFile struct {
	name     string
	category activity.Category
	format   Format
	// dirHint breaks ties between files sharing a name, e.g. the many
	// MyActivity.json files of a full export.
	dirHint string
}

// Ordered by preference within a category.
var knownFiles = []knownFile{
	{name: "watch-history.json", category: activity.Watch, format: FormatJSON},
	{name: "watch-history.html", category: activity.Watch, format: FormatHTML},
	{name: "search-history.json", category: activity.Search, format: FormatJSON},
	{name: "search-history.html", category: activity.Search, format: FormatHTML},
	{name: "MyActivity.json", category: activity.Query, format: FormatJSON, dirHint: "search"},
	{name: "Location History.json", category: activity.Location, format: FormatJSON},
	{name: "Semantic Location History.json", category: activity.Location, format: FormatJSON},
}

func lookupKnown(base string) (knownFile, int, bool) {
	for i, k := range knownFiles {
		if k.name == base {
			return k, i, true
		}
	}
	return knownFile{}, 0, false
}

// Entry describes one file that was looked at.
type Entry struct {
	Name     string            `json:"name"`
	Category activity.Category `json:"category"`
	Format   Format            `json:"format"`
	Size     int64             `json:"size"`
	Selected bool              `json:"selected"`
}

// Source is the located file for one category.
type Source struct {
	Category activity.Category
	Name     string
	Format   Format
	Size     int64
	open     func() (io.ReadCloser, error)
}

// Open returns a reader over the file contents.
func (s Source) Open() (io.ReadCloser, error) {
	return s.open()
}

// Records reads, decodes and extracts the source. Extraction itself never
// fails; an error here means the file could not be read or decoded and the
// category should be treated as empty.
func (s Source) Records() ([]activity.Record, error) {
	rc, err := s.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Name, err)
	}
	if int64(len(data)) > MaxEntrySize {
		return nil, fmt.Errorf("%s: %w", s.Name, ErrEntryTooLarge)
	}

	if s.Format == FormatHTML {
		entries, err := activity.ParseActivityHTML(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return activity.Extract(s.Category, entries), nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.Name, err)
	}
	return activity.Extract(s.Category, raw), nil
}

// Bundle is the result of locating activity files in one or more inputs.
type Bundle struct {
	Sources map[activity.Category]Source
	Entries []Entry

	candidates map[activity.Category][]candidate
	closers    []io.Closer
}

type candidate struct {
	source Source
	rank   int
	entry  int
}

func newBundle() *Bundle {
	return &Bundle{
		Sources:    make(map[activity.Category]Source),
		candidates: make(map[activity.Category][]candidate),
	}
}

// Has reports whether a file was located for c.
func (b *Bundle) Has(c activity.Category) bool {
	_, ok := b.Sources[c]
	return ok
}

// Categories returns the located categories in receipt order.
func (b *Bundle) Categories() []activity.Category {
	var out []activity.Category
	for _, c := range activity.Categories() {
		if b.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Missing returns a MissingInputError for the requested categories that were
// not located, or nil.
func (b *Bundle) Missing(requested []activity.Category) *MissingInputError {
	var missing []activity.Category
	for _, c := range requested {
		if !b.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingInputError{Categories: missing}
}

// Close releases any archives held open by the bundle.
func (b *Bundle) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// add records a file as a candidate when its base name is known; other
// files are ignored.
func (b *Bundle) add(name string, size int64, open func() (io.ReadCloser, error)) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	known, rank, ok := lookupKnown(path.Base(slashed))
	if !ok {
		return
	}

	// Files under the hinted directory sort ahead of same-named ones.
	rank *= 2
	if known.dirHint != "" && !strings.Contains(strings.ToLower(path.Dir(slashed)), known.dirHint) {
		rank++
	}
	b.candidates[known.category] = append(b.candidates[known.category], candidate{
		source: Source{Category: known.category, Name: name, Format: known.format, Size: size, open: open},
		rank:   rank,
		entry:  len(b.Entries),
	})
	b.Entries = append(b.Entries, Entry{
		Name:     name,
		Category: known.category,
		Format:   known.format,
		Size:     size,
	})
}

// resolve picks one source per category: the best-ranked candidate, with
// the first one seen winning among equals.
func (b *Bundle) resolve() {
	for c, cands := range b.candidates {
		best := cands[0]
		for _, cand := range cands[1:] {
			if cand.rank < best.rank {
				best = cand
			}
		}
		b.Sources[c] = best.source
		b.Entries[best.entry].Selected = true
	}
}

// Open locates activity files in each path. A path may be a .zip archive,
// an extracted export directory (searched recursively) or a single activity
// file named as in a Takeout export.
func Open(paths ...string) (*Bundle, error) {
	b := newBundle()
	for _, p := range paths {
		if err := b.addPath(p); err != nil {
			b.Close()
			return nil, err
		}
	}
	b.resolve()
	return b, nil
}

// FromZip locates activity files inside an already opened archive, such as
// an uploaded file.
func FromZip(r io.ReaderAt, size int64) (*Bundle, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading zip archive: %w", err)
	}
	b := newBundle()
	b.addZip(zr)
	b.resolve()
	return b, nil
}

func (b *Bundle) addPath(p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}

	switch {
	case info.IsDir():
		return b.addDir(p)
	case strings.EqualFold(filepath.Ext(p), ".zip"):
		zr, err := zip.OpenReader(p)
		if err != nil {
			return fmt.Errorf("opening zip archive %s: %w", p, err)
		}
		b.closers = append(b.closers, zr)
		b.addZip(&zr.Reader)
		return nil
	default:
		if _, _, ok := lookupKnown(filepath.Base(p)); !ok {
			return fmt.Errorf("%s: not a zip archive, directory, or known activity file", p)
		}
		b.add(p, info.Size(), fileOpener(p))
		return nil
	}
}

func (b *Bundle) addDir(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, _, ok := lookupKnown(d.Name()); !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		b.add(p, info.Size(), fileOpener(p))
		return nil
	})
}

func (b *Bundle) addZip(zr *zip.Reader) {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		b.add(f.Name, int64(f.UncompressedSize64), f.Open)
	}
}

func fileOpener(p string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(p)
	}
}
