package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// FrameArchive serves frames previously written by the render command.
type FrameArchive struct {
	dir          string
	logger       *slog.Logger
	cacheControl string
}

// FrameArchiveConfig configures the archive handler.
type FrameArchiveConfig struct {
	Dir          string
	CacheControl string
}

// NewFrameArchive checks that cfg.Dir is a directory.
func NewFrameArchive(cfg FrameArchiveConfig, logger *slog.Logger) (*FrameArchive, error) {
	st, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame archive: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("frame archive %s is not a directory", cfg.Dir)
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "public, max-age=3600"
	}
	return &FrameArchive{dir: cfg.Dir, logger: logger, cacheControl: cfg.CacheControl}, nil
}

// Handler serves /frames/<index>.png and /frames/frame_<index>.png.
func (h *FrameArchive) Handler() http.Handler {
	return http.HandlerFunc(h.serveFrame)
}

func (h *FrameArchive) serveFrame(w http.ResponseWriter, r *http.Request) {
	index, ok := parseFramePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	fullPath := filepath.Join(h.dir, fmt.Sprintf("frame_%05d.png", index))
	if !fileExists(fullPath) {
		h.log().Debug("archived frame missing", "index", index, "path", fullPath)
		http.Error(w, fmt.Sprintf("frame not found: %d", index), http.StatusNotFound)
		return
	}

	w.Header().Set("Cache-Control", h.cacheControl)
	http.ServeFile(w, r, fullPath)
}

func (h *FrameArchive) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

// parseFramePath accepts /frames/12.png or /frames/frame_00012.png.
func parseFramePath(requestPath string) (int, bool) {
	if !strings.HasPrefix(requestPath, "/frames/") {
		return 0, false
	}
	base := path.Base(requestPath)
	if !strings.HasSuffix(base, ".png") {
		return 0, false
	}
	name := strings.TrimPrefix(strings.TrimSuffix(base, ".png"), "frame_")

	index, err := strconv.Atoi(name)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !st.IsDir()
}
