package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-slotted"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	treePath     string
	dataJSON     string
	dataFilePath string
	outputPath   string
	policy       string
	configPath   string
	cacheKey     string
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTree, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.treePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	tree, err := slotted.ParseTree(source)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseTreeFailed, err)
		return ExitCodeValidationError
	}

	data, err := loadData(cfg.dataJSON, cfg.dataFilePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
		return ExitCodeInputError
	}

	ctx := context.Background()
	opts, cleanup, err := engineOptions(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConfigFailed, err)
		return ExitCodeUsageError
	}
	defer cleanup()

	engine, err := slotted.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}
	defer engine.Close()

	if err := engine.RegisterTemplate(ctx, cliTemplateName, tree.Root); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	rc := tree.Bind(engine.NewContext(), data)

	var html string
	if cfg.cacheKey != "" {
		html, err = engine.RenderCached(ctx, cliTemplateName, cfg.cacheKey, rc)
	} else {
		html, err = engine.Render(ctx, cliTemplateName, rc)
	}
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(html), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.treePath, FlagTree, "", "")
	fs.StringVar(&cfg.treePath, FlagTreeShort, "", "")
	fs.StringVar(&cfg.dataJSON, FlagData, "", "")
	fs.StringVar(&cfg.dataJSON, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.policy, FlagPolicy, "", "")
	fs.StringVar(&cfg.policy, FlagPolicyShort, "", "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.cacheKey, FlagCacheKey, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.treePath == "" {
		return nil, errors.New(ErrMsgMissingTree)
	}
	if cfg.treePath == InputSourceStdin && cfg.dataFilePath == InputSourceStdin {
		return nil, errors.New(ErrMsgStdinTwice)
	}

	return cfg, nil
}

// engineOptions builds engine options from the config file and flags. The
// --policy flag overrides the configured default policy. The returned cleanup
// flushes the configured logger.
func engineOptions(ctx context.Context, cfg *renderConfig) ([]slotted.Option, func(), error) {
	var opts []slotted.Option
	cleanup := func() {}

	if cfg.configPath != "" {
		fileCfg, err := slotted.LoadConfig(cfg.configPath)
		if err != nil {
			return nil, nil, err
		}
		logger, err := fileCfg.Logger()
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = logger.Sync() }

		fileOpts, err := fileCfg.Options(ctx)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, slotted.WithLogger(logger))
		opts = append(opts, fileOpts...)
	}

	if cfg.policy != "" {
		policy, err := slotted.ParseRenderPolicy(cfg.policy)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, slotted.WithDefaultPolicy(policy))
	}

	return opts, cleanup, nil
}
