package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/databases/neo4j"
)

var errNoConnectionURI = errors.New("no connection URI specified (use --uri or neo4j.uri in .cypher.yaml)")

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check Cypher files, then have a Neo4j server plan every query",
		ArgsUsage: "[files or directories...]",
		Flags: append(checkFlags(),
			&cli.StringFlag{
				Name:    "uri",
				Usage:   "database connection URI",
				Sources: cli.EnvVars("CYPHER_NEO4J_URI"),
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "database username",
				Sources: cli.EnvVars("CYPHER_NEO4J_USER"),
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "database password",
				Sources: cli.EnvVars("CYPHER_NEO4J_PASS"),
			},
			&cli.StringFlag{
				Name:  "database",
				Usage: "database name",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every planned statement",
			},
		),
		Action: runVerify,
	}
}

// neo4jConfig merges the config file with flags, flags taking precedence.
func neo4jConfig(cfg *cypherparse.Config, cmd *cli.Command) (*cypherparse.Neo4jConfig, error) {
	merged := &cypherparse.Neo4jConfig{}
	if cfg != nil && cfg.Neo4j != nil {
		*merged = *cfg.Neo4j
	}

	if uri := cmd.String("uri"); uri != "" {
		merged.URI = uri
	}

	if username := cmd.String("username"); username != "" {
		merged.Username = username
	}

	if password := cmd.String("password"); password != "" {
		merged.Password = password
	}

	if database := cmd.String("database"); database != "" {
		merged.Database = database
	}

	if merged.URI == "" {
		return nil, errNoConnectionURI
	}

	return merged, nil
}

func runVerify(ctx context.Context, cmd *cli.Command) error {
	setup, err := prepareCheck(cmd)
	if err != nil {
		return err
	}

	neoCfg, err := neo4jConfig(setup.cfg, cmd)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if cmd.Bool("debug") {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	defer func() { _ = logger.Sync() }()

	verifier, err := neo4j.New(ctx, neoCfg, neo4j.WithLogger(logger))
	if err != nil {
		return err
	}

	defer func() { _ = verifier.Close(ctx) }()

	result, err := checkFiles(ctx, cmd, setup, setup.files, verifier)
	if err != nil {
		return err
	}

	if !result.Ok() {
		_, _ = fmt.Fprintln(os.Stderr, "verification failed")

		return cli.Exit("", 1)
	}

	return nil
}
