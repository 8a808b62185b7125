package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks dataDir, collects .parquet files (case-insensitive, any
// naming), and returns the paths sorted lexicographically for deterministic
// processing order. Aggregation is order-independent, but a stable order
// keeps logs and reports reproducible across runs.
func Discover(dataDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".parquet") {
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
