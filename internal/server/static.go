package server

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// staticHandler serves files from a directory and hands everything else
// to the root document handler.
type staticHandler struct {
	dir     http.Dir
	exclude []string
	root    http.Handler
}

func newStaticHandler(dir string, exclude []string, root http.Handler) *staticHandler {
	if dir == "" {
		dir = "."
	}
	return &staticHandler{dir: http.Dir(dir), exclude: exclude, root: root}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if h.serveFile(w, r, name) {
		return
	}
	h.root.ServeHTTP(w, r)
}

// serveFile writes the named file if it exists, is a regular file and is
// not excluded. It reports whether a response was written.
func (h *staticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	rel := strings.TrimPrefix(name, "/")
	if rel == "" || isExcluded(rel, h.exclude) {
		return false
	}

	f, err := h.dir.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// isExcluded checks if relPath matches any of the given glob patterns,
// either as a whole or by its base name. Dotfiles are always hidden.
func isExcluded(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)

	for _, part := range strings.Split(normalized, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}

	base := path.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
