package activity

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// ParseActivityHTML converts the activity cells of a Takeout "My Activity"
// HTML page into the same {"title", "time"} entries the JSON export uses,
// so both formats go through one extractor. Times that parse are
// rewritten as RFC 3339; the rest are passed through unchanged.
func ParseActivityHTML(r io.Reader) ([]any, error) {
	doc, err := goquery.NewDocumentFromReader(activityPolicy().SanitizeReader(r))
	if err != nil {
		return nil, fmt.Errorf("parsing activity html: %w", err)
	}

	var entries []any
	collect := func(cell *goquery.Selection) {
		lines := cellLines(cell)
		if len(lines) == 0 {
			return
		}
		entry := map[string]any{"title": lines[0]}
		if len(lines) > 1 {
			last := lines[len(lines)-1]
			if ts, ok := parseDisplayTimestamp(last); ok {
				entry["time"] = ts.Format(time.RFC3339)
			} else {
				entry["time"] = last
			}
		}
		entries = append(entries, entry)
	}

	outer := doc.Find("div.outer-cell")
	if outer.Length() > 0 {
		outer.Each(func(_ int, s *goquery.Selection) {
			collect(s.Find("div.content-cell").First())
		})
	} else {
		doc.Find("div.content-cell").Each(func(_ int, s *goquery.Selection) {
			collect(s)
		})
	}
	return entries, nil
}

// activityPolicy keeps the structural markup needed to find activity cells
// and drops scripts, styles and everything else.
func activityPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "p", "br", "a", "b", "i", "span")
	p.AllowAttrs("class").OnElements("div", "p", "span")
	return p
}

// cellLines splits a content cell on <br> and returns the non-empty lines.
func cellLines(cell *goquery.Selection) []string {
	var lines []string
	var cur strings.Builder
	flush := func() {
		if line := normalizeSpace(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}
	cell.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "br" {
			flush()
			return
		}
		cur.WriteString(s.Text())
	})
	flush()
	return lines
}

// normalizeSpace collapses runs of whitespace, including the no-break
// spaces Takeout puts after "Watched" and before AM/PM.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
