package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file (default ~/.config/kickback/config.yaml)" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging on stderr"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// RunFlags are the knobs shared by every command that produces a report.
type RunFlags struct {
	Include  []string `short:"i" long:"include" description:"Category to include: watch, search, query or location (repeatable; default all)"`
	TopK     int      `long:"top-k" description:"Top items listed per category (default from config)"`
	Since    string   `long:"since" description:"Only count activity newer than duration (e.g., 30d, 12w)"`
	LastYear bool     `long:"last-year" description:"Only count the last 12 months"`
	Values   []string `long:"value" description:"Override a unit value as category=dollars (repeatable)"`
	Mood     bool     `long:"mood" description:"Add the data mood section"`
	NoLabel  bool     `long:"no-label" description:"Leave out the data label section"`
}

// InputArgs are the Takeout archives, folders or files to read.
type InputArgs struct {
	Paths []string `positional-arg-name:"TAKEOUT" required:"1"`
}

// ReceiptCommand prints the data receipt.
type ReceiptCommand struct {
	RunFlags
	Color  string    `long:"color" description:"Colorize output" choice:"auto" choice:"always" choice:"never" default:"auto"`
	Output string    `short:"o" long:"out" description:"Write the receipt to a file instead of stdout"`
	Args   InputArgs `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// SummaryCommand prints per-category numbers as a table.
type SummaryCommand struct {
	RunFlags
	Args InputArgs `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// InspectCommand lists the activity files found in the inputs.
type InspectCommand struct {
	Args InputArgs `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// ExportCommand writes the summaries to a spreadsheet.
type ExportCommand struct {
	RunFlags
	Output string    `short:"o" long:"out" description:"Spreadsheet path" default:"kickback.xlsx"`
	Args   InputArgs `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// ServeCommand runs the local upload page.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`

	globals *GlobalFlags
	version string
}

// WatchCommand prints a receipt for every archive dropped into a folder.
type WatchCommand struct {
	RunFlags
	Dir     string `long:"dir" description:"Folder to watch (default from config)"`
	Output  string `short:"o" long:"out" description:"Folder for receipts (default: the watched folder)"`
	Scan    bool   `long:"scan" description:"Also process archives already in the folder"`
	Service string `long:"service" description:"Manage the background service" choice:"install" choice:"uninstall" choice:"start" choice:"stop" choice:"status"`

	globals *GlobalFlags
	version string
}

// ConfigCommand shows or initializes configuration.
type ConfigCommand struct {
	Init bool `long:"init" description:"Write the default config file if it does not exist"`
	Path bool `long:"path" description:"Print the config file path and exit"`

	globals *GlobalFlags
	version string
}
