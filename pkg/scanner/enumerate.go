package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sambabib/webcompat/pkg/detector"
	"github.com/sambabib/webcompat/pkg/logger"
)

// Enumerate lists the scannable files under root as slash separated relative paths:
// html files first, then css, then js, each group sorted. Directories are never returned.
func Enumerate(root string, exclude func(relPath string) bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotDirectory, root)
	}

	groups := map[detector.ContentType][]string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Errorf("Error reading %s: %v", path, err)
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if exclude != nil && exclude(rel) {
			logger.Debugf("Excluded %s", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		t := detector.TypeForExtension(filepath.Ext(d.Name()))
		if t != detector.Unknown {
			groups[t] = append(groups[t], rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var files []string
	for _, t := range []detector.ContentType{detector.HTML, detector.CSS, detector.JS} {
		sort.Strings(groups[t])
		files = append(files, groups[t]...)
	}
	return files, nil
}
