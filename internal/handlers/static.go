package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"chatrelay-backend/pkg/logging"
)

// StaticHandler serves the UI asset tree under a fixed root directory.
type StaticHandler struct {
	root   string
	logger *logging.Logger
}

func NewStaticHandler(root string, logger *logging.Logger) *StaticHandler {
	if logger == nil {
		logger = logging.Default()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &StaticHandler{root: abs, logger: logger}
}

// Serve resolves the request path under the root. "/" maps to
// index.html, directories resolve to their index.html, and any resolved
// path escaping the root is refused.
func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Path
	if rel == "/" {
		rel = "index.html"
	} else {
		rel = strings.TrimPrefix(rel, "/")
	}

	abs := filepath.Join(h.root, filepath.FromSlash(rel))
	if abs != h.root && !strings.HasPrefix(abs, h.root+string(os.PathSeparator)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(abs)
	if err != nil {
		h.writeFSError(w, err)
		return
	}
	if info.IsDir() {
		abs = filepath.Join(abs, "index.html")
	}

	h.streamFile(w, abs)
}

func (h *StaticHandler) streamFile(w http.ResponseWriter, path string) {
	f, err := os.Open(path)
	if err != nil {
		h.writeFSError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentTypeFor(filepath.Ext(path)))
	w.WriteHeader(http.StatusOK)

	// Headers are out the door; a mid-stream failure just ends the body.
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Error("static stream error", "path", path, "error", err)
	}
}

func (h *StaticHandler) writeFSError(w http.ResponseWriter, err error) {
	if os.IsNotExist(err) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	h.logger.Error("static file error", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func contentTypeFor(ext string) string {
	switch strings.ToLower(ext) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
