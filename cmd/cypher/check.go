package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/parser"
	"github.com/rlch/cypherparse/runner"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse Cypher files and report syntax errors",
		ArgsUsage: "[files or directories...]",
		Flags: append(checkFlags(),
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "re-check files when they change",
			},
		),
		Action: runCheck,
	}
}

// checkFlags are shared by check and verify.
func checkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "output results as JSON",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "verbose output",
		},
		&cli.BoolFlag{
			Name:  "fail-fast",
			Usage: "stop on first failure",
		},
		&cli.StringFlag{
			Name:  "run",
			Usage: "check only files matching pattern",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Usage: "nesting limit (overrides config)",
		},
		&cli.BoolFlag{
			Name:  "lint",
			Usage: "run semantic lint rules on files that parse",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "number of files checked in parallel",
		},
	}
}

// checkSetup is the resolved input of a check run.
type checkSetup struct {
	cfg        *cypherparse.Config
	files      []string
	parserOpts []parser.Option
	lint       bool
}

func prepareCheck(cmd *cli.Command) (*checkSetup, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	cfg, err := loadConfig(args[0])
	if err != nil {
		return nil, err
	}

	files, err := collectFiles(args, cfg.Extensions())
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, errNoCypherFiles
	}

	opts := cfg.ParserOptions()
	if depth := int(cmd.Int("max-depth")); depth > 0 {
		opts = append(opts, parser.WithMaxDepth(depth))
	}

	return &checkSetup{
		cfg:        cfg,
		files:      files,
		parserOpts: opts,
		lint:       cmd.Bool("lint") || cfg.Lint(),
	}, nil
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	setup, err := prepareCheck(cmd)
	if err != nil {
		return err
	}

	result, err := checkFiles(ctx, cmd, setup, setup.files, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("watch") {
		return watchFiles(ctx, cmd, setup)
	}

	if !result.Ok() {
		return cli.Exit("", 1)
	}

	return nil
}

// checkFiles runs a single check pass over files and prints its summary.
func checkFiles(
	ctx context.Context,
	cmd *cli.Command,
	setup *checkSetup,
	files []string,
	verifier runner.Verifier,
) (*runner.Result, error) {
	handler, err := newHandler(cmd, os.Stdout, files)
	if err != nil {
		return nil, err
	}

	opts := []runner.Option{
		runner.WithHandler(handler),
		runner.WithFailFast(cmd.Bool("fail-fast")),
		runner.WithFilter(cmd.String("run")),
		runner.WithParserOptions(setup.parserOpts...),
		runner.WithConcurrency(int(cmd.Int("jobs"))),
	}

	if setup.lint {
		opts = append(opts, runner.WithAnalysis())
	}

	if verifier != nil {
		opts = append(opts, runner.WithVerifier(verifier))
	}

	result, err := runner.New(opts...).Run(ctx, files)
	if err != nil {
		return nil, err
	}

	if summarizer, ok := handler.(runner.Summarizer); ok {
		_ = summarizer.Summary(result)
	}

	return result, nil
}

// newHandler picks the output: JSON, verbose, the animated TUI on a
// terminal, or dots.
func newHandler(cmd *cli.Command, out io.Writer, files []string) (runner.Handler, error) {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd())
	}

	var styles *runner.Styles
	if tty {
		styles = runner.DefaultStyles()
	}

	switch {
	case cmd.Bool("json"):
		return runner.NewFormatHandler(runner.NewJSONFormatter(out), os.Stderr), nil
	case cmd.Bool("verbose"):
		return runner.NewFormatHandler(runner.NewVerboseFormatter(out, styles), os.Stderr), nil
	case tty && !cmd.Bool("watch"):
		tuiHandler := runner.NewTUIHandler(out, os.Stderr, files)

		if err := tuiHandler.Start(); err != nil {
			return nil, fmt.Errorf("failed to start TUI: %w", err)
		}

		return tuiHandler, nil
	default:
		return runner.NewFormatHandler(runner.NewDotsFormatter(out), os.Stderr), nil
	}
}

func watchFiles(ctx context.Context, cmd *cli.Command, setup *checkSetup) error {
	exts := setup.cfg.Extensions()

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	watcher, err := runner.NewWatcher(exts, runner.DefaultDebounce, logger.Named("watch"))
	if err != nil {
		return err
	}

	defer func() { _ = watcher.Close() }()

	roots := cmd.Args().Slice()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	if err := watcher.Add(roots...); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stderr, "watching for changes...")

	return watcher.Watch(ctx, func(changed []string) {
		var files []string

		for _, path := range changed {
			if _, err := os.Stat(path); err == nil && hasExtension(path, exts) {
				files = append(files, path)
			}
		}

		if len(files) == 0 {
			return
		}

		if _, err := checkFiles(ctx, cmd, setup, files, nil); err != nil {
			logger.Warn("check failed", zap.Error(err))
		}
	})
}
