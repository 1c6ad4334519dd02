package cli

import (
	"fmt"
	"os"

	"github.com/runnerr0/kickback/internal/activity"
	"github.com/runnerr0/kickback/internal/takeout"
)

// inspectJSON is the JSON output structure for the inspect command.
type inspectJSON struct {
	Entries  []takeout.Entry `json:"entries"`
	Found    []string        `json:"found"`
	NotFound []string        `json:"not_found"`
}

// Execute implements the go-flags Commander interface for InspectCommand.
func (c *InspectCommand) Execute(args []string) error {
	return c.executeWith()
}

// executeWith lists located files; it needs no config or logger.
func (c *InspectCommand) executeWith() error {
	bundle, err := takeout.Open(c.Args.Paths...)
	if err != nil {
		return err
	}
	defer bundle.Close()

	found := bundle.Categories()
	var notFound []activity.Category
	if m := bundle.Missing(activity.Categories()); m != nil {
		notFound = m.Categories
	}

	if c.globals != nil && c.globals.JSON {
		out := inspectJSON{
			Entries:  bundle.Entries,
			Found:    categoryNames(found),
			NotFound: categoryNames(notFound),
		}
		if out.Entries == nil {
			out.Entries = []takeout.Entry{}
		}
		return printJSON(os.Stdout, out)
	}

	if len(bundle.Entries) == 0 {
		fmt.Println("No activity files found.")
	} else {
		header := []string{"Category", "Format", "Size", "Used", "File"}
		rows := make([][]string, 0, len(bundle.Entries))
		for _, e := range bundle.Entries {
			used := "no"
			if e.Selected {
				used = "yes"
			}
			rows = append(rows, []string{e.Category.Title(), string(e.Format), formatBytes(e.Size), used, e.Name})
		}
		if err := renderTable(os.Stdout, header, rows); err != nil {
			return err
		}
	}

	for _, cat := range notFound {
		fmt.Printf("Not found: %s\n", cat.Title())
	}
	return nil
}

func categoryNames(cats []activity.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}
