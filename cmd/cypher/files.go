package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/boyter/gocodewalker"

	"github.com/rlch/cypherparse"
)

var errNoCypherFiles = errors.New("no Cypher files found")

// loadConfig loads the nearest config above path. A missing config is not
// an error; the nil *Config falls back to defaults.
func loadConfig(path string) (*cypherparse.Config, error) {
	dir := path

	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}

	cfg, err := cypherparse.LoadConfig(dir)
	if errors.Is(err, cypherparse.ErrConfigNotFound) {
		return nil, nil
	}

	return cfg, err
}

// collectFiles expands args into a sorted list of files. Directories are
// walked for files with the given extensions, respecting .gitignore; files
// named explicitly are always included.
func collectFiles(args, exts []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		err = walkDir(arg, exts, func(path string) {
			files = append(files, path)
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

// walkDir walks a directory for Cypher files, respecting .gitignore.
func walkDir(root string, exts []string, callback func(path string)) error {
	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = exts

	var walkErr error
	fileWalker.SetErrorHandler(func(e error) bool {
		walkErr = e
		return true
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for f := range fileListQueue {
			callback(f.Location)
		}
	}()

	if err := fileWalker.Start(); err != nil {
		return err
	}

	wg.Wait()
	return walkErr
}

// hasExtension reports whether path ends in one of exts.
func hasExtension(path string, exts []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	return slices.Contains(exts, ext)
}
