// Package server exposes a noise animation over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MeKo-Tech/noisemap/internal/render"
)

// FrameServerConfig configures a FrameServer. Zero values select the
// defaults applied by NewFrameServer.
type FrameServerConfig struct {
	DefaultWidth         int
	DefaultHeight        int
	MaxWidth             int
	MaxHeight            int
	MaxConcurrentRenders int
	Compression          png.CompressionLevel
	Post                 render.PostProcess
	CacheControl         string
	// StatusInterval is the push period of the status stream (default: 250ms)
	StatusInterval time.Duration
}

// FrameServer renders frames on request. The animator and its color map
// are guarded by mu: renders hold the read lock, resolution and viewport
// changes take the write lock.
type FrameServer struct {
	mu     sync.RWMutex
	anim   *render.Animator
	cfg    FrameServerConfig
	logger *slog.Logger
	sem    chan struct{}
	start  time.Time

	activeRenders atomic.Int32
	queuedRenders atomic.Int32
	totalRendered atomic.Int64
	totalFailed   atomic.Int64
}

// Status is the JSON document served at /status.
type Status struct {
	Render   RenderStatus   `json:"render"`
	Viewport ViewportStatus `json:"viewport"`
	Palette  PaletteStatus  `json:"palette"`
	Uptime   float64        `json:"uptime_seconds"`
}

// RenderStatus contains current render operation status.
type RenderStatus struct {
	ActiveRenders int   `json:"active_renders"`
	QueuedRenders int   `json:"queued_renders"`
	TotalRendered int64 `json:"total_rendered"`
	TotalFailed   int64 `json:"total_failed"`
	MaxConcurrent int   `json:"max_concurrent"`
}

// ViewportStatus reports the animator's view state.
type ViewportStatus struct {
	Z           float64    `json:"z"`
	Detail      float64    `json:"detail"`
	Frequency   float64    `json:"frequency"`
	Speed       float64    `json:"speed"`
	Sensitivity float64    `json:"sensitivity"`
	Origin      [2]float64 `json:"origin"`
}

// PaletteStatus reports the color map settings.
type PaletteStatus struct {
	Resolution   int    `json:"resolution"`
	ColorCount   int    `json:"color_count"`
	Interpolator string `json:"interpolator"`
}

// NewFrameServer wraps anim. A nil logger falls back to slog.Default().
func NewFrameServer(anim *render.Animator, cfg FrameServerConfig, logger *slog.Logger) (*FrameServer, error) {
	if anim == nil {
		return nil, errors.New("frame server needs an animator")
	}
	if cfg.DefaultWidth <= 0 {
		cfg.DefaultWidth = 256
	}
	if cfg.DefaultHeight <= 0 {
		cfg.DefaultHeight = 256
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = 2048
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = 2048
	}
	if cfg.MaxConcurrentRenders <= 0 {
		cfg.MaxConcurrentRenders = 1
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "no-store"
	}
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = 250 * time.Millisecond
	}

	return &FrameServer{
		anim:   anim,
		cfg:    cfg,
		logger: logger,
		sem:    make(chan struct{}, cfg.MaxConcurrentRenders),
		start:  time.Now(),
	}, nil
}

// Handler routes every endpoint of the frame server.
func (s *FrameServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /frame.png", s.serveFrame)
	mux.HandleFunc("GET /resolution", s.getResolution)
	mux.HandleFunc("POST /resolution", s.postResolution)
	mux.HandleFunc("POST /zoom", s.postZoom)
	mux.Handle("GET /status", s.StatusHandler())
	mux.Handle("GET /status/stream", s.StatusStreamHandler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return withCORS(mux)
}

// Status returns a snapshot of counters, viewport and palette state.
func (s *FrameServer) Status() Status {
	s.mu.RLock()
	origin := s.anim.Origin()
	colors := s.anim.Colors()
	st := Status{
		Viewport: ViewportStatus{
			Z:           s.anim.Z(),
			Detail:      s.anim.Detail(),
			Frequency:   s.anim.Frequency(),
			Speed:       s.anim.Speed(),
			Sensitivity: s.anim.Sensitivity(),
			Origin:      [2]float64{origin.X(), origin.Y()},
		},
		Palette: PaletteStatus{
			Resolution:   colors.Resolution(),
			ColorCount:   colors.ColorCount(),
			Interpolator: colors.Interpolator().Name(),
		},
	}
	s.mu.RUnlock()

	st.Render = RenderStatus{
		ActiveRenders: int(s.activeRenders.Load()),
		QueuedRenders: int(s.queuedRenders.Load()),
		TotalRendered: s.totalRendered.Load(),
		TotalFailed:   s.totalFailed.Load(),
		MaxConcurrent: s.cfg.MaxConcurrentRenders,
	}
	st.Uptime = time.Since(s.start).Seconds()
	return st
}

// StatusHandler returns an HTTP handler for the status endpoint (JSON).
func (s *FrameServer) StatusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		s.writeJSON(w, http.StatusOK, s.Status())
	})
}

// StatusStreamHandler pushes the status as Server-Sent Events until the
// client goes away.
func (s *FrameServer) StatusStreamHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ticker := time.NewTicker(s.cfg.StatusInterval)
		defer ticker.Stop()

		s.sendStatusEvent(w, flusher)
		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				s.sendStatusEvent(w, flusher)
			}
		}
	})
}

func (s *FrameServer) sendStatusEvent(w http.ResponseWriter, flusher http.Flusher) {
	data, err := json.Marshal(s.Status())
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

// serveFrame renders one frame. Without a z parameter it renders the
// current frame and advances the animation like a display tick.
func (s *FrameServer) serveFrame(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	width, err := intParam(q.Get("width"), s.cfg.DefaultWidth, s.cfg.MaxWidth)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid width: %v", err), http.StatusBadRequest)
		return
	}
	height, err := intParam(q.Get("height"), s.cfg.DefaultHeight, s.cfg.MaxHeight)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid height: %v", err), http.StatusBadRequest)
		return
	}

	var (
		z       float64
		advance bool
	)
	if raw := q.Get("z"); raw != "" {
		z, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid z: %v", err), http.StatusBadRequest)
			return
		}
	} else {
		advance = true
	}

	s.queuedRenders.Add(1)
	select {
	case s.sem <- struct{}{}:
		s.queuedRenders.Add(-1)
		defer func() { <-s.sem }()
	case <-r.Context().Done():
		s.queuedRenders.Add(-1)
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	}

	if advance {
		s.mu.Lock()
		z = s.anim.Z()
		s.anim.SetZ(z + s.anim.Speed())
		s.mu.Unlock()
	}

	start := time.Now()
	s.activeRenders.Add(1)
	s.mu.RLock()
	img, err := s.anim.RenderAt(z, width, height)
	s.mu.RUnlock()
	s.activeRenders.Add(-1)
	if err != nil {
		s.totalFailed.Add(1)
		s.log().Error("failed to render frame", "z", z, "width", width, "height", height, "error", err)
		http.Error(w, fmt.Sprintf("failed to render frame: %v", err), http.StatusInternalServerError)
		return
	}
	img = s.cfg.Post.Apply(img)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", s.cfg.CacheControl)
	w.Header().Set("X-Frame-Z", strconv.FormatFloat(z, 'g', -1, 64))
	if err := render.EncodePNG(w, img, s.cfg.Compression); err != nil {
		s.totalFailed.Add(1)
		s.log().Error("failed to write frame", "z", z, "error", err)
		return
	}
	s.totalRendered.Add(1)
	s.log().Debug("frame rendered", "z", z, "width", width, "height", height, "ms", time.Since(start).Milliseconds())
}

type resolutionResponse struct {
	Resolution int `json:"resolution"`
	ColorCount int `json:"color_count"`
}

func (s *FrameServer) resolution() resolutionResponse {
	colors := s.anim.Colors()
	return resolutionResponse{Resolution: colors.Resolution(), ColorCount: colors.ColorCount()}
}

func (s *FrameServer) getResolution(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := s.resolution()
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, resp)
}

// postResolution applies ?op=increase|decrease|set (set needs &value=N).
func (s *FrameServer) postResolution(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	op := q.Get("op")

	var value int
	if op == "set" {
		v, err := strconv.Atoi(q.Get("value"))
		if err != nil {
			http.Error(w, "set requires an integer value", http.StatusBadRequest)
			return
		}
		value = v
	}

	s.mu.Lock()
	colors := s.anim.Colors()
	switch op {
	case "increase":
		colors.IncreaseResolution()
	case "decrease":
		colors.DecreaseResolution()
	case "set":
		colors.SetResolution(value)
	default:
		s.mu.Unlock()
		http.Error(w, fmt.Sprintf("unknown op %q (use increase, decrease or set)", op), http.StatusBadRequest)
		return
	}
	resp := s.resolution()
	s.mu.Unlock()

	s.log().Info("resolution changed", "op", op, "resolution", resp.Resolution)
	s.writeJSON(w, http.StatusOK, resp)
}

// postZoom applies ?dir=in|out, the equivalent of one mouse-wheel notch.
func (s *FrameServer) postZoom(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")

	s.mu.Lock()
	switch dir {
	case "in":
		s.anim.ZoomIn()
	case "out":
		s.anim.ZoomOut()
	default:
		s.mu.Unlock()
		http.Error(w, fmt.Sprintf("unknown zoom direction %q (use in or out)", dir), http.StatusBadRequest)
		return
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, s.Status().Viewport)
}

func (s *FrameServer) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().Error("failed to encode response", "error", err)
	}
}

func (s *FrameServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// intParam parses a positive integer query value, falling back to def when
// empty and rejecting values above limit.
func intParam(raw string, def, limit int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v <= 0 || v > limit {
		return 0, fmt.Errorf("%d outside 1..%d", v, limit)
	}
	return v, nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
