// Package main provides the cypher CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "cypher",
		Version: version,
		Usage:   "Parse, check and format Cypher files",
		Commands: []*cli.Command{
			checkCommand(),
			fmtCommand(),
			astCommand(),
			verifyCommand(),
			replCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
