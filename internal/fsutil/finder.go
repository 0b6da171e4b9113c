// Package fsutil resolves command-line input arguments to files.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoMatch is returned when a glob pattern matches no files.
var ErrNoMatch = errors.New("pattern matched no files")

// InputExtensions are the extensions picked up when a directory is given.
var InputExtensions = []string{".mg", ".txt", ".hcl", ".yaml", ".yml"}

// FindFilesByExtension recursively searches rootPath for files ending in one
// of the given extensions and returns their paths in lexical order.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ExpandInputs turns arguments into a de-duplicated list of files, keeping
// argument order. Doublestar patterns ("graphs/**/*.hcl") are expanded,
// directories contribute every file with an InputExtensions suffix, and
// anything else is passed through unchanged.
func ExpandInputs(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		if isPattern(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoMatch, arg)
			}
			sort.Strings(matches)
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			files, err := FindFilesByExtension(arg, InputExtensions...)
			if err != nil {
				return nil, fmt.Errorf("error walking %s: %w", arg, err)
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoMatch, arg)
			}
			for _, f := range files {
				add(f)
			}
			continue
		}
		add(arg)
	}
	return out, nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
