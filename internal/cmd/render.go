package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/noisemap/internal/render"
	"github.com/MeKo-Tech/noisemap/internal/worker"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render animation frames to PNG files",
	Long: `Render a sequence of frames, each advancing z by --speed, into
<output-dir>/frame_NNNNN.png using a pool of parallel workers.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntP("frames", "n", 60, "Number of frames to render")
	renderCmd.Flags().Int("width", 256, "Frame width in pixels")
	renderCmd.Flags().Int("height", 256, "Frame height in pixels")
	renderCmd.Flags().Int("workers", 0, "Number of parallel workers (default: number of CPUs)")
	renderCmd.Flags().Bool("progress", true, "Show progress bar")
	renderCmd.Flags().Bool("force", false, "Re-render frames that already exist")
	renderCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some frames fail")
	renderCmd.Flags().Float64("blur", 0, "Gaussian blur sigma applied to each frame (0 disables)")
	renderCmd.Flags().Int("scale", 1, "Nearest-neighbour upscale factor")
	renderCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"render.frames", "frames"},
		{"render.width", "width"},
		{"render.height", "height"},
		{"render.workers", "workers"},
		{"render.progress", "progress"},
		{"render.force", "force"},
		{"render.allow_failures", "allow-failures"},
		{"render.blur", "blur"},
		{"render.scale", "scale"},
		{"render.png_compression", "png-compression"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, renderCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	frames := viper.GetInt("render.frames")
	width := viper.GetInt("render.width")
	height := viper.GetInt("render.height")
	workers := viper.GetInt("render.workers")
	showProgress := viper.GetBool("render.progress")
	force := viper.GetBool("render.force")
	allowFailures := viper.GetBool("render.allow_failures")
	outputDir := viper.GetString("output-dir")

	if logger == nil {
		initLogging()
	}

	if frames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	compression, err := render.ParseCompression(viper.GetString("render.png_compression"))
	if err != nil {
		return err
	}

	anim, err := animatorFromConfig()
	if err != nil {
		return err
	}

	writer, err := render.NewWriter(render.WriterConfig{
		Animator: anim,
		Dir:      outputDir,
		Width:    width,
		Height:   height,
		Post: render.PostProcess{
			Blur:  float32(viper.GetFloat64("render.blur")),
			Scale: viper.GetInt("render.scale"),
		},
		Compression: compression,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to init frame writer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	tasks := worker.Tasks(frames, anim.Z(), anim.Speed(), force)

	logger.Info("Starting frame rendering",
		"frames", frames,
		"size", fmt.Sprintf("%dx%d", width, height),
		"workers", workers,
		"output_dir", outputDir,
		"noise", viper.GetString("noise.kind"),
		"seed", viper.GetInt64("noise.seed"),
		"z_start", anim.Z(),
		"speed", anim.Speed(),
	)

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers:    workers,
		Generator:  writer,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	failed := worker.Failed(results)
	for _, r := range failed {
		logger.Error("Frame rendering failed", "index", r.Task.Index, "z", r.Task.Z, "error", r.Err)
	}

	logger.Info(progress.Summary())

	if len(failed) > 0 {
		if allowFailures {
			logger.Warn("Some frames failed to render, but continuing due to --allow-failures flag", "failed_count", len(failed))
			return nil
		}
		return fmt.Errorf("%d frames failed to render", len(failed))
	}
	return nil
}
