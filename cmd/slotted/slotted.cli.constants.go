package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTree     = "tree"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagOutput   = "output"
	FlagPolicy   = "policy"
	FlagConfig   = "config"
	FlagCacheKey = "cache-key"
	FlagFormat   = "format"
)

// Flag names - short form
const (
	FlagTreeShort     = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagPolicyShort   = "p"
	FlagConfigShort   = "c"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Name under which the CLI registers the parsed tree
const cliTemplateName = "cli"

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTree       = "tree source required"
	ErrMsgInvalidJSON       = "invalid JSON data"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgParseTreeFailed   = "tree parsing failed"
	ErrMsgRenderFailed      = "render failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgConfigFailed      = "failed to load config"
	ErrMsgStdinTwice        = "tree and data cannot both be read from stdin"
)

// Help text templates
const (
	HelpMainUsage = `go-slotted - slot-based HTML template CLI

Usage:
    slotted <command> [options]

Commands:
    render      Render a YAML component tree with JSON data
    validate    Compile a tree and report its segments and slots
    version     Show version information
    help        Show help for a command

Use "slotted help <command>" for more information about a command.`

	HelpRenderUsage = `Render a YAML component tree with JSON data

Usage:
    slotted render [options]

Options:
    -t, --tree <file>       Tree file (use "-" for stdin)
    -d, --data <json>       JSON data string
    -f, --data-file <file>  JSON data file (use "-" for stdin)
    -o, --output <file>     Output file (default: stdout)
    -p, --policy <policy>   Render policy: never, compile_on_first_hit
    -c, --config <file>     Engine config file (YAML)
    --cache-key <key>       Render through the configured fragment cache

Examples:
    slotted render -t page.yaml -d '{"name": "Rust"}'
    slotted render -t page.yaml -f data.json -o page.html
    cat page.yaml | slotted render -t - -d '{"title": "Home"}'
    slotted render -t page.yaml -c slotted.yaml --cache-key home`

	HelpValidateUsage = `Compile a tree and report its segments and slots

Usage:
    slotted validate [options]

Options:
    -t, --tree <file>       Tree file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    slotted validate -t page.yaml
    slotted validate -t page.yaml -F json`

	HelpVersionUsage = `Show version information

Usage:
    slotted version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    slotted help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-slotted version %s\nCommit: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Build setting keys read from the binary
const (
	buildSettingRevision = "vcs.revision"
	buildSettingTime     = "vcs.time"
)

// Validation output format templates
const (
	ValidationTextSuccess   = "Tree is valid"
	ValidationTextStats     = "Segments: %d (%d before merge): %d literal, %d slot, %d text slot, %d component"
	ValidationTextSlots     = "Slots: %s"
	ValidationTextNoSlots   = "Slots: none"
	ValidationTextFailure   = "Tree is invalid: %v"
	ValidationSlotSeparator = ", "
)

// CLI metadata
const (
	CLIName = "slotted"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
