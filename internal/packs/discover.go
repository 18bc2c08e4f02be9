// Package packs finds parameter pack files and interprets their pipeline
// entries. It is shared by the policy updater and the validator.
package packs

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

// Pattern matches every pack file below a root.
const Pattern = "**/*.json"

// Pipeline keys, in the order a pack declares them.
const (
	PreAcquisition  = "pre_acquisition_pipeline"
	PostAcquisition = "post_acquisition_pipeline"
)

// Pipelines lists both pipeline keys.
var Pipelines = []string{PreAcquisition, PostAcquisition}

// ErrRootNotFound is returned when the packs root does not exist.
var ErrRootNotFound = errors.New("packs root not found")

// File is a discovered pack.
type File struct {
	// Path is the root joined with Rel.
	Path string
	// Rel is the slash-separated path relative to the root.
	Rel string
}

// Segments returns the directory and file name parts of the relative path.
func (f File) Segments() []string {
	return strings.Split(f.Rel, "/")
}

// Discover returns every *.json file under root in lexical order, dropping
// any whose relative path contains one of the exclude segments.
func Discover(root string, exclude []string) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("stat packs root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("packs root is not a directory: %s", root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", root, err)
	}
	sort.Strings(matches)

	files := make([]File, 0, len(matches))
	for _, rel := range matches {
		f := File{Path: filepath.Join(root, filepath.FromSlash(rel)), Rel: rel}
		if hasSegment(f.Segments(), exclude) {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

func hasSegment(segments, names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, seg := range segments {
		for _, name := range names {
			if seg == name {
				return true
			}
		}
	}
	return false
}
