package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListSourceFiles returns every file under dir with extension ext, sorted
// for a deterministic order. Hidden directories are skipped.
func ListSourceFiles(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExt
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
