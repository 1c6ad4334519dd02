package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Receipt *ReceiptCommand
	Summary *SummaryCommand
	Inspect *InspectCommand
	Export  *ExportCommand
	Serve   *ServeCommand
	Watch   *WatchCommand
	Config  *ConfigCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "kickback"
	parser.LongDescription = "Turn a Google Takeout export into a receipt for the data you gave away."

	cmds := &commands{
		Receipt: &ReceiptCommand{globals: &globals, version: version},
		Summary: &SummaryCommand{globals: &globals, version: version},
		Inspect: &InspectCommand{globals: &globals, version: version},
		Export:  &ExportCommand{globals: &globals, version: version},
		Serve:   &ServeCommand{globals: &globals, version: version},
		Watch:   &WatchCommand{globals: &globals, version: version},
		Config:  &ConfigCommand{globals: &globals, version: version},
	}

	parser.AddCommand("receipt", "Print the data receipt", "Read a Takeout archive, folder or activity files and print the data receipt.", cmds.Receipt)
	parser.AddCommand("summary", "Show per-category numbers", "Show event counts, top items and estimated value per category as a table.", cmds.Summary)
	parser.AddCommand("inspect", "List located activity files", "List the activity files found in the inputs and which one feeds each category.", cmds.Inspect)
	parser.AddCommand("export", "Write a spreadsheet", "Write the summaries to an .xlsx spreadsheet.", cmds.Export)
	parser.AddCommand("serve", "Run the local upload page", "Run a local web page where an archive can be uploaded for a receipt.", cmds.Serve)
	parser.AddCommand("watch", "Watch a drop folder", "Write a receipt next to every Takeout archive that lands in a folder, optionally as a background service.", cmds.Watch)
	parser.AddCommand("config", "Show or initialize configuration", "Print the effective configuration, or write the defaults with --init.", cmds.Config)

	return parser, &globals, cmds
}

// Run is the main entry point for the kickback CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("kickback %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
