// Package archive builds a font-file Walk abstraction on top of "archive/zip",
// so that fonts shipped inside zip bundles can be subsetted without manual
// extraction.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"
)

// fontExts are the member extensions Walk considers font files.
var fontExts = map[string]struct{}{
	".ttf":   {},
	".otf":   {},
	".ttc":   {},
	".woff":  {},
	".woff2": {},
}

// WalkFunc is called for every font file found in the archive. The archive
// argument is the path passed to Walk, file is the matching zip entry. If an
// error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk calls walkFn for every font file in the archive under prefix (empty
// prefix walks the whole archive). Entries with path traversal components
// ("..") or absolute paths abort the walk to prevent Zip Slip attacks.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, ok := fontExts[strings.ToLower(path.Ext(name))]; !ok {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
