package parser

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the log file extension that is discovered and watched.
const DefaultExtension = ".jsonl"

// MatchesExtension reports whether path has the log extension.
func MatchesExtension(path, ext string) bool {
	if ext == "" {
		ext = DefaultExtension
	}
	return strings.EqualFold(filepath.Ext(path), ext)
}

// FindFiles walks each root recursively and returns every file with the log
// extension. Symlinked directories are followed; a directory reached twice
// (by link cycle or by overlapping roots) is walked once. Unreadable entries
// are skipped.
func FindFiles(roots []string, ext string) []string {
	w := walker{ext: ext, seen: make(map[string]struct{})}
	for _, root := range roots {
		w.walk(root)
	}
	return w.files
}

// Dirs returns every directory under the roots, following symlinks, for
// watch subscription.
func Dirs(roots []string) []string {
	w := walker{dirsOnly: true, seen: make(map[string]struct{})}
	for _, root := range roots {
		w.walk(root)
	}
	return w.dirs
}

type walker struct {
	ext      string
	dirsOnly bool
	seen     map[string]struct{}
	files    []string
	dirs     []string
}

func (w *walker) walk(dir string) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return
	}
	if _, ok := w.seen[real]; ok {
		return
	}
	w.seen[real] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	w.dirs = append(w.dirs, dir)

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		mode := e.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				continue // dangling link
			}
			mode = info.Mode().Type()
		}
		switch {
		case mode.IsDir():
			w.walk(path)
		case mode.IsRegular() && !w.dirsOnly && MatchesExtension(path, w.ext):
			w.files = append(w.files, path)
		}
	}
}
