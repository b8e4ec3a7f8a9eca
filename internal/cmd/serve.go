package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/noisemap/internal/render"
	"github.com/MeKo-Tech/noisemap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve live noise frames over HTTP",
	Long: `Serve rendered frames on demand at /frame.png, with endpoints to change
the color map resolution and zoom. Optionally serves frames written by the
render command under /frames/.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("frames-dir", "", "Serve pre-rendered frames from this directory under /frames/")
	serveCmd.Flags().Int("width", 256, "Default frame width")
	serveCmd.Flags().Int("height", 256, "Default frame height")
	serveCmd.Flags().Int("max-width", 2048, "Largest frame width a client may request")
	serveCmd.Flags().Int("max-height", 2048, "Largest frame height a client may request")
	serveCmd.Flags().Int("max-concurrent-renders", runtime.NumCPU(), "Max concurrent frame renders (default: number of CPUs)")
	serveCmd.Flags().String("cache-control", "no-store", "Cache-Control header for live frames")
	serveCmd.Flags().Float64("blur", 0, "Gaussian blur sigma applied to each frame (0 disables)")
	serveCmd.Flags().Int("scale", 1, "Nearest-neighbour upscale factor")
	serveCmd.Flags().String("png-compression", "speed", "PNG compression (default, speed, best, none)")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("serve.addr", "addr")
	mustBind("serve.frames_dir", "frames-dir")
	mustBind("serve.width", "width")
	mustBind("serve.height", "height")
	mustBind("serve.max_width", "max-width")
	mustBind("serve.max_height", "max-height")
	mustBind("serve.max_concurrent_renders", "max-concurrent-renders")
	mustBind("serve.cache_control", "cache-control")
	mustBind("serve.blur", "blur")
	mustBind("serve.scale", "scale")
	mustBind("serve.png_compression", "png-compression")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	framesDir := viper.GetString("serve.frames_dir")
	maxConc := viper.GetInt("serve.max_concurrent_renders")

	compression, err := render.ParseCompression(viper.GetString("serve.png_compression"))
	if err != nil {
		return err
	}

	anim, err := animatorFromConfig()
	if err != nil {
		return err
	}

	fs, err := server.NewFrameServer(anim, server.FrameServerConfig{
		DefaultWidth:         viper.GetInt("serve.width"),
		DefaultHeight:        viper.GetInt("serve.height"),
		MaxWidth:             viper.GetInt("serve.max_width"),
		MaxHeight:            viper.GetInt("serve.max_height"),
		MaxConcurrentRenders: maxConc,
		Compression:          compression,
		Post: render.PostProcess{
			Blur:  float32(viper.GetFloat64("serve.blur")),
			Scale: viper.GetInt("serve.scale"),
		},
		CacheControl: viper.GetString("serve.cache_control"),
	}, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	if framesDir != "" {
		archive, err := server.NewFrameArchive(server.FrameArchiveConfig{Dir: framesDir}, logger)
		if err != nil {
			return err
		}
		mux.Handle("/frames/", archive.Handler())
	}
	mux.Handle("/", fs.Handler())

	logger.Info("frame server listening",
		"addr", addr,
		"frames_dir", framesDir,
		"max_concurrent_renders", maxConc,
		"noise", viper.GetString("noise.kind"),
		"seed", viper.GetInt64("noise.seed"),
	)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down frame server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
