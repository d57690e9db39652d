// Package scanner selects the files eligible for upload from a source
// directory.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bstardust/cloud-file-uploader/internal/logger"
	"github.com/bstardust/cloud-file-uploader/pkg/common"
)

// Scan returns the regular files directly inside dir whose extension is in
// exts, sorted by name. It does not recurse into subdirectories. Symlinks
// count as regular files when they resolve to one; anything else is
// skipped. An empty extension set selects nothing.
func Scan(dir string, exts map[string]struct{}) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, common.NewDirectoryError(dir, err)
	}
	if !info.IsDir() {
		return nil, common.NewDirectoryError(dir, fmt.Errorf("not a directory"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.NewDirectoryError(dir, err)
	}

	// os.ReadDir sorts entries by filename, which keeps the selection
	// order deterministic across filesystems.
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		if !entry.Type().IsRegular() {
			// Follow symlinks; drop sockets, devices and broken links.
			resolved, err := os.Stat(path)
			if err != nil || !resolved.Mode().IsRegular() {
				logger.Debug("Skipping %s: not a regular file", path)
				continue
			}
		}

		if !matches(entry.Name(), exts) {
			continue
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func matches(name string, exts map[string]struct{}) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}

	_, ok := exts[ext]
	return ok
}
