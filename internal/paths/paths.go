// Package paths locates the project directory and the videos under it.
package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var ErrProjectNotFound = errors.New("project directory not found")

var DefaultExtensions = []string{".mp4", ".wmv", ".avi"}

func WorkingDir() (string, error) {
	return os.Getwd()
}

// ProjectDir returns the working directory truncated after the last path
// segment named marker.
func ProjectDir(marker string) (string, error) {
	wd, err := WorkingDir()
	if err != nil {
		return "", err
	}
	return projectDirOf(wd, marker)
}

func projectDirOf(dir, marker string) (string, error) {
	if marker == "" {
		return "", fmt.Errorf("%w: empty marker", ErrProjectNotFound)
	}

	re := regexp.MustCompile(`^(.*/` + regexp.QuoteMeta(marker) + `)(?:/|$)`)
	m := re.FindStringSubmatch(filepath.ToSlash(dir))
	if m == nil {
		return "", fmt.Errorf("%w: no %q segment in %s", ErrProjectNotFound, marker, dir)
	}

	return filepath.FromSlash(m[1]), nil
}

// VideoFiles walks root and returns the sorted paths of regular files whose
// extension, compared case-insensitively, is in exts. A nil exts means
// DefaultExtensions.
func VideoFiles(root string, exts []string) ([]string, error) {
	if exts == nil {
		exts = DefaultExtensions
	}
	wanted := make([]string, len(exts))
	for i, ext := range exts {
		wanted[i] = strings.ToLower(ext)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if slices.Contains(wanted, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list videos in %s: %w", root, err)
	}

	slices.Sort(files)

	return files, nil
}
