package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-slotted"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	treePath string
	format   string
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid bool                   `json:"valid"`
	Error string                 `json:"error,omitempty"`
	Slots []string               `json:"slots,omitempty"`
	Stats *slotted.TemplateStats `json:"stats,omitempty"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTree, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.treePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	output := validate(source)

	if cfg.format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
	} else {
		outputValidationText(output, stdout)
	}

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}

	fs.StringVar(&cfg.treePath, FlagTree, "", "")
	fs.StringVar(&cfg.treePath, FlagTreeShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.treePath == "" {
		return nil, errors.New(ErrMsgMissingTree)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// validate parses and compiles a tree without rendering it.
func validate(source []byte) validationOutput {
	tree, err := slotted.ParseTree(source)
	if err != nil {
		return validationOutput{Error: err.Error()}
	}

	tmpl := slotted.Compile(tree.Root)
	stats := tmpl.Stats()
	return validationOutput{
		Valid: true,
		Slots: tmpl.Slots(),
		Stats: &stats,
	}
}

func outputValidationText(output validationOutput, stdout io.Writer) {
	if !output.Valid {
		fmt.Fprintf(stdout, ValidationTextFailure+FmtNewline, output.Error)
		return
	}

	fmt.Fprintln(stdout, ValidationTextSuccess)
	s := output.Stats
	fmt.Fprintf(stdout, ValidationTextStats+FmtNewline,
		s.Total(), s.BeforeMerge, s.Literals, s.Slots, s.TextSlots, s.Components)

	if len(output.Slots) == 0 {
		fmt.Fprintln(stdout, ValidationTextNoSlots)
		return
	}
	fmt.Fprintf(stdout, ValidationTextSlots+FmtNewline, strings.Join(output.Slots, ValidationSlotSeparator))
}
