package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GatherFiles returns the absolute paths of the given files and of the files
// below the given directories whose extension is one of extensions. Hidden
// directories are skipped. Files named explicitly must match too.
func GatherFiles(roots []string, extensions []string) ([]string, error) {
	hasExtension := func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range extensions {
			if e == ext {
				return true
			}
		}
		return false
	}

	var paths []string

	appendAbsPath := func(path string) error {
		path, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("absolute path: %w", err)
		}
		paths = append(paths, path)
		return nil
	}

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if fi.Mode().IsRegular() {
			if !hasExtension(fi.Name()) {
				continue
			}

			if err := appendAbsPath(root); err != nil {
				return nil, err
			}
		} else if fi.Mode().IsDir() {
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if d.IsDir() {
					if path != root && strings.HasPrefix(d.Name(), ".") {
						return filepath.SkipDir
					}
					return nil
				}

				if !d.Type().IsRegular() || !hasExtension(d.Name()) {
					return nil
				}

				return appendAbsPath(path)
			})
			if err != nil {
				return nil, fmt.Errorf("read dir: %w", err)
			}
		} else {
			return nil, fmt.Errorf("path '%s' neither directory nor file", root)
		}
	}

	return paths, nil
}
