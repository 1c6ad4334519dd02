package takeout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runnerr0/kickback/internal/activity"
)

// ErrNothingToSummarize means no requested category produced usable input.
var ErrNothingToSummarize = errors.New("nothing to summarize")

// MissingInputError lists requested categories whose files were not found.
type MissingInputError struct {
	Categories []activity.Category
}

func (e *MissingInputError) Error() string {
	parts := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		parts[i] = fmt.Sprintf("%s (%s)", strings.Join(ExpectedFiles(c), " or "), c.Title())
	}
	return "could not find expected files: " + strings.Join(parts, ", ")
}

// ExpectedFiles returns the file names that supply category c.
func ExpectedFiles(c activity.Category) []string {
	var names []string
	for _, k := range knownFiles {
		if k.category == c {
			names = append(names, k.name)
		}
	}
	return names
}
