package cypherparse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rlch/cypherparse/format"
	"github.com/rlch/cypherparse/parser"
)

// Config represents the .cypher.yaml configuration file.
type Config struct {
	Parser ParserConfig `yaml:"parser,omitempty"`
	Format FormatConfig `yaml:"format,omitempty"`
	Check  CheckConfig  `yaml:"check,omitempty"`

	// Neo4j enables `cypher verify` against a live server.
	Neo4j *Neo4jConfig `yaml:"neo4j,omitempty"`
}

// ParserConfig holds parser limits.
type ParserConfig struct {
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// FormatConfig holds layout settings for `cypher fmt` and the language
// server.
type FormatConfig struct {
	Width  int    `yaml:"width,omitempty"`
	Indent string `yaml:"indent,omitempty"`
}

// CheckConfig selects the files `cypher check` and `cypher fmt` visit.
type CheckConfig struct {
	// Extensions without the leading dot, e.g. "cypher".
	Extensions []string `yaml:"extensions,omitempty"`

	// Lint runs the semantic rules of package analysis on clean files.
	Lint bool `yaml:"lint,omitempty"`
}

// Neo4jConfig holds Neo4j connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// DefaultExtensions are the file extensions checked when none are
// configured.
var DefaultExtensions = []string{"cypher", "cql", "cyp"}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".cypher.yaml", ".cypher.yml", "cypher.yaml", "cypher.yml"}

// ParserOptions converts the parser section to parser options.
func (c *Config) ParserOptions() []parser.Option {
	if c == nil || c.Parser.MaxDepth == 0 {
		return nil
	}

	return []parser.Option{parser.WithMaxDepth(c.Parser.MaxDepth)}
}

// FormatOptions returns the layout settings, filling unset fields with
// the defaults.
func (c *Config) FormatOptions() format.Options {
	opts := format.DefaultOptions()
	if c == nil {
		return opts
	}

	if c.Format.Width != 0 {
		opts.Width = c.Format.Width
	}

	if c.Format.Indent != "" {
		opts.Indent = c.Format.Indent
	}

	return opts
}

// Extensions returns the configured extensions, or DefaultExtensions.
func (c *Config) Extensions() []string {
	if c == nil || len(c.Check.Extensions) == 0 {
		return DefaultExtensions
	}

	exts := make([]string, len(c.Check.Extensions))
	for i, ext := range c.Check.Extensions {
		exts[i] = strings.TrimPrefix(ext, ".")
	}

	return exts
}

// Lint reports whether `cypher check` runs lint rules by default.
func (c *Config) Lint() bool {
	return c != nil && c.Check.Lint
}

// LoadConfig finds and loads the nearest .cypher.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	if cfg.Parser.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: %s: parser.max_depth must not be negative", ErrInvalidConfig, path)
	}

	return &cfg, nil
}
