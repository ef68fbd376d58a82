// Package fileutil holds file modes and directory helpers for generated output.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OwnerReadWrite is the file permission mode for source description
// snapshots, which may contain internal API detail (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirMode is the permission mode for directories created for generated output.
const DirMode os.FileMode = 0o755

// ListByExt returns the sorted names of regular files directly inside dir
// whose extension equals ext (including the dot). A missing dir yields nil.
func ListByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("fileutil: reading %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// RemoveByExt deletes every regular file directly inside dir with extension
// ext and returns the removed paths. Subdirectories are left alone.
func RemoveByExt(dir, ext string) ([]string, error) {
	names, err := ListByExt(dir, ext)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("fileutil: removing %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// WriteFile creates parent directories as needed and writes data with the
// ReadableByAll mode.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("fileutil: creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, ReadableByAll); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", path, err)
	}
	return nil
}
