// Command upscale enlarges images through the event-chain pipeline, the
// traditional monolithic path, or both side by side.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	upscaler "github.com/Skryldev/image-upscaler"
	"github.com/Skryldev/image-upscaler/config"
	"github.com/Skryldev/image-upscaler/middleware"
	"github.com/Skryldev/image-upscaler/upscale"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var noPreprocess, noPostprocess bool

	cmd := &cobra.Command{
		Use:   "upscale <input> [output]",
		Short: "Upscale images with pluggable strategies and a fault-tolerant pipeline",
		Long: `upscale enlarges an image by a given scale factor.

The pipeline mode runs a chain of events (load, validate, analyze,
preprocess, upscale, postprocess, save) with per-event metrics, retry
support and configurable fault tolerance.  The traditional mode performs
the same work as one sequential function.  Compare mode runs both and
reports the overhead.

Available algorithms: ` + algorithmList(),
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine; variables stay unset.
			_ = godotenv.Load()
			cfg = config.FromEnv(cfg)

			cfg.InputPath = args[0]
			if len(args) > 1 {
				cfg.OutputPath = args[1]
			}
			cfg.EnablePreprocess = !noPreprocess
			cfg.EnablePostprocess = !noPostprocess

			if err := config.Validate(cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Float64Var(&cfg.Scale, "scale", cfg.Scale, "Scale factor (must exceed 1)")
	cmd.Flags().StringVar((*string)(&cfg.Mode), "mode", string(cfg.Mode), "Execution mode: pipeline, traditional or compare")
	cmd.Flags().StringVar(&cfg.Algorithm, "algorithm", "", "Upscaling algorithm (default: auto-select from content)")
	cmd.Flags().StringVar(&cfg.FaultTolerance, "fault-tolerance", cfg.FaultTolerance, "Failure handling: fail-fast, best-effort or retry")
	cmd.Flags().IntVar(&cfg.Retries, "retries", cfg.Retries, "Extra attempts per event under retry mode")
	cmd.Flags().BoolVar(&noPreprocess, "no-preprocess", false, "Skip denoise/sharpen preprocessing")
	cmd.Flags().BoolVar(&noPostprocess, "no-postprocess", false, "Skip postprocessing")
	cmd.Flags().BoolVar(&cfg.PostSharpen, "post-sharpen", false, "Sharpen the upscaled output")
	cmd.Flags().IntVar(&cfg.Quality, "quality", cfg.Quality, "Encode quality for lossy formats (1-100)")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	zl := middleware.NewLogger(cfg.LogLevel, cfg.LogConsole)

	app := upscaler.New(cfg)
	app.SetLogger(middleware.NewZerologLogger(zl))

	switch cfg.Mode {
	case config.ModeTraditional:
		res, err := app.RunTraditional(ctx)
		if err != nil {
			return err
		}
		zl.Info().
			Str("algorithm", res.Algorithm).
			Dur("duration", res.Duration).
			Str("output", res.OutputPath).
			Msg("traditional run complete")
		return nil

	case config.ModeCompare:
		report, err := app.Compare(ctx)
		if err != nil {
			return err
		}
		if err := report.WriteReport(os.Stdout); err != nil {
			return err
		}
		if !report.Success() {
			return fmt.Errorf("comparison had failures")
		}
		return nil

	default:
		res, err := app.RunPipeline(ctx)
		if err != nil {
			return err
		}
		if res.Metrics != nil {
			fmt.Println()
			if err := res.Metrics.WriteReport(os.Stdout); err != nil {
				return err
			}
		}
		if !res.Success {
			return fmt.Errorf("pipeline failed: %w", res.Failure)
		}
		zl.Info().
			Str("algorithm", res.AlgorithmUsed).
			Dur("duration", res.Duration).
			Str("output", app.OutputPath()).
			Msg("pipeline run complete")
		return nil
	}
}

func algorithmList() string {
	names := ""
	for i, u := range upscale.All() {
		if i > 0 {
			names += ", "
		}
		names += u.Name()
	}
	return names
}
