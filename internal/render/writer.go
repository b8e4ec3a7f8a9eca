package render

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/noisemap/internal/worker"
)

// WriterConfig configures a frame Writer.
type WriterConfig struct {
	Animator    *Animator
	Dir         string
	Width       int
	Height      int
	Post        PostProcess
	Compression png.CompressionLevel
	Logger      *slog.Logger
}

// Writer renders frames to <Dir>/frame_NNNNN.png. It implements
// worker.Generator and only reads the Animator, so one Writer can serve
// every worker in a pool.
type Writer struct {
	cfg WriterConfig
}

// NewWriter validates cfg and creates the output directory.
func NewWriter(cfg WriterConfig) (*Writer, error) {
	if cfg.Animator == nil {
		return nil, fmt.Errorf("writer needs an animator")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrFrameSize
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &Writer{cfg: cfg}, nil
}

// FramePath returns the output path of frame index.
func (w *Writer) FramePath(index int) string {
	return filepath.Join(w.cfg.Dir, fmt.Sprintf("frame_%05d.png", index))
}

// Generate renders task.Z and writes it. Existing frames are kept unless
// task.Force is set.
func (w *Writer) Generate(ctx context.Context, task worker.Task) (string, error) {
	path := w.FramePath(task.Index)
	if !task.Force {
		if _, err := os.Stat(path); err == nil {
			w.log().Debug("frame exists, skipping", "index", task.Index, "path", path)
			return path, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := w.cfg.Animator.RenderAt(task.Z, w.cfg.Width, w.cfg.Height)
	if err != nil {
		return "", fmt.Errorf("failed to render frame %d: %w", task.Index, err)
	}
	img = w.cfg.Post.Apply(img)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Frames appear atomically via rename.
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create frame %s: %w", tmp, err)
	}
	if err := EncodePNG(file, img, w.cfg.Compression); err != nil {
		file.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("frame %d: %w", task.Index, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to close frame %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to move frame into place: %w", err)
	}
	w.log().Debug("frame written", "index", task.Index, "z", task.Z, "path", path)
	return path, nil
}

func (w *Writer) log() *slog.Logger {
	if w.cfg.Logger != nil {
		return w.cfg.Logger
	}
	return slog.Default()
}
