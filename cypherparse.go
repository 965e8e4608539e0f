// Package cypherparse parses Cypher source files.
//
// The grammar lives in the parser package; this package ties it to files on
// disk, the .cypher.yaml configuration and human-readable diagnostics.
//
//	f, err := cypherparse.ParseFile("queries/users.cypher")
//	if err != nil {
//		return err
//	}
//	for _, e := range f.Errors {
//		fmt.Println(cypherparse.FormatError(f.Source, e))
//	}
package cypherparse

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/parser"
)

// File is a parsed source file.
type File struct {
	Path       string
	Source     string
	Statements []ast.Statement
	Errors     []*parser.SyntaxError
}

// Parse parses src, recording path in every position.
func Parse(path, src string, opts ...parser.Option) *File {
	opts = append([]parser.Option{parser.WithFilename(path)}, opts...)
	res := parser.ParseString(src, opts...)

	return &File{
		Path:       path,
		Source:     src,
		Statements: res.Statements,
		Errors:     res.Errors,
	}
}

// ParseFile reads and parses the file at path. Syntax errors are reported
// in File.Errors; the returned error covers only reading the file.
func ParseFile(path string, opts ...parser.Option) (*File, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return Parse(path, string(data), opts...), nil
}

// OK reports whether the file parsed without errors.
func (f *File) OK() bool {
	return len(f.Errors) == 0
}

// Err returns nil for a clean file, otherwise an error wrapping ErrSyntax
// and every syntax error.
func (f *File) Err() error {
	if f.OK() {
		return nil
	}

	res := parser.Result{Statements: f.Statements, Errors: f.Errors}

	return fmt.Errorf("%w in %s: %w", ErrSyntax, f.Path, res.Err())
}
