package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/format"
)

func astCommand() *cli.Command {
	return &cli.Command{
		Name:      "ast",
		Usage:     "Print the syntax tree of a Cypher file",
		ArgsUsage: "[file]",
		Action:    runAST,
	}
}

func runAST(_ context.Context, cmd *cli.Command) error {
	var (
		f   *cypherparse.File
		err error
	)

	if path := cmd.Args().First(); path != "" {
		f, err = cypherparse.ParseFile(path)
	} else {
		var data []byte

		data, err = io.ReadAll(os.Stdin)
		f = cypherparse.Parse("<stdin>", string(data))
	}

	if err != nil {
		return err
	}

	writeAST(os.Stdout, f)

	if !f.OK() {
		for _, e := range f.Errors {
			_, _ = fmt.Fprintln(os.Stderr, cypherparse.FormatError(f.Source, e))
		}

		return cli.Exit("", 1)
	}

	return nil
}

// writeAST dumps every statement that parsed, including those kept by
// error recovery.
func writeAST(w io.Writer, f *cypherparse.File) {
	for _, stmt := range f.Statements {
		_, _ = io.WriteString(w, format.Dump(stmt))
	}
}
