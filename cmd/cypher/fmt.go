package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/format"
)

const filePermissions = 0o600

func fmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Aliases:   []string{"format"},
		Usage:     "Format Cypher files",
		ArgsUsage: "[files...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "write result to file instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "check if files are formatted (exit 1 if not)",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "display diffs instead of rewriting files",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "line width (overrides config)",
			},
		},
		Action: runFmt,
	}
}

func runFmt(_ context.Context, cmd *cli.Command) error {
	write := cmd.Bool("write")
	check := cmd.Bool("check")
	diff := cmd.Bool("diff")
	args := cmd.Args().Slice()

	cfgPath := "."
	if len(args) > 0 {
		cfgPath = args[0]
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	opts := cfg.FormatOptions()
	if width := int(cmd.Int("width")); width > 0 {
		opts.Width = width
	}

	if len(args) == 0 {
		return formatStdin(os.Stdin, os.Stdout, cfg, opts)
	}

	files, err := collectFiles(args, cfg.Extensions())
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errNoCypherFiles
	}

	var unformatted []string

	for _, file := range files {
		changed, err := formatFile(file, cfg, opts, write, diff, os.Stdout)
		if err != nil {
			return err
		}

		if changed {
			unformatted = append(unformatted, file)
		}
	}

	if check && len(unformatted) > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "The following files are not formatted:\n")

		for _, f := range unformatted {
			_, _ = fmt.Fprintf(os.Stderr, "  %s\n", f)
		}

		return cli.Exit("", 1)
	}

	return nil
}

func formatStdin(in io.Reader, out io.Writer, cfg *cypherparse.Config, opts format.Options) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	f := cypherparse.Parse("<stdin>", string(data), cfg.ParserOptions()...)
	if !f.OK() {
		return f.Err()
	}

	_, err = io.WriteString(out, format.Format(f.Statements, opts))

	return err
}

// formatFile formats path, reporting whether its content changed. Files
// with syntax errors are left untouched.
func formatFile(
	path string,
	cfg *cypherparse.Config,
	opts format.Options,
	write, showDiff bool,
	out io.Writer,
) (bool, error) {
	f, err := cypherparse.ParseFile(path, cfg.ParserOptions()...)
	if err != nil {
		return false, err
	}

	if !f.OK() {
		return false, f.Err()
	}

	formatted := format.Format(f.Statements, opts)
	changed := f.Source != formatted

	if !changed {
		return false, nil
	}

	if write {
		writeErr := os.WriteFile(path, []byte(formatted), filePermissions)
		if writeErr != nil {
			return true, writeErr
		}

		_, _ = fmt.Fprintf(out, "%s\n", path)

		return true, nil
	}

	if showDiff {
		printDiff(out, path, f.Source, formatted)

		return true, nil
	}

	_, err = io.WriteString(out, formatted)

	return true, err
}

func printDiff(out io.Writer, path, original, formatted string) {
	_, _ = fmt.Fprintf(out, "diff %s\n", path)
	_, _ = fmt.Fprintf(out, "--- %s\n", path)
	_, _ = fmt.Fprintf(out, "+++ %s\n", path)

	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")

	maxLines := max(len(origLines), len(fmtLines))

	for i := range maxLines {
		var origLine, fmtLine string

		if i < len(origLines) {
			origLine = origLines[i]
		}

		if i < len(fmtLines) {
			fmtLine = fmtLines[i]
		}

		if origLine != fmtLine {
			if origLine != "" {
				_, _ = fmt.Fprintf(out, "-%s\n", origLine)
			}

			if fmtLine != "" {
				_, _ = fmt.Fprintf(out, "+%s\n", fmtLine)
			}
		}
	}
}
