// Package upscaler is the primary entry point: it wires codecs, strategies,
// storage and the analyzer into runnable jobs for the pipeline, traditional
// and compare modes.
package upscaler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Skryldev/image-upscaler/adapters/decoder"
	"github.com/Skryldev/image-upscaler/adapters/encoder"
	"github.com/Skryldev/image-upscaler/adapters/storage"
	"github.com/Skryldev/image-upscaler/analysis"
	"github.com/Skryldev/image-upscaler/config"
	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
	"github.com/Skryldev/image-upscaler/middleware"
	"github.com/Skryldev/image-upscaler/pipeline"
	"github.com/Skryldev/image-upscaler/upscale"
	"github.com/Skryldev/image-upscaler/utils"
)

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() config.Config { return config.Default() }

// Upscaler is the fully wired application object.
type Upscaler struct {
	cfg        config.Config
	codecs     *core.CodecRegistry
	strategies *core.StrategyRegistry
	storage    core.Storage
	analyzer   core.ContentAnalyzer
	logger     core.Logger
}

// New creates an Upscaler with all built-in codecs and strategies
// registered.  The configuration must already be validated.
func New(cfg config.Config) *Upscaler {
	codecs := core.NewCodecRegistry()
	codecs.RegisterDecoder(core.FormatPNG, decoder.NewPNG())
	codecs.RegisterDecoder(core.FormatJPEG, decoder.NewJPEG())
	codecs.RegisterDecoder(core.FormatGIF, decoder.NewGIF())
	codecs.RegisterDecoder(core.FormatBMP, decoder.NewBMP())
	codecs.RegisterDecoder(core.FormatTIFF, decoder.NewTIFF())
	codecs.RegisterDecoder(core.FormatWebP, decoder.NewWebP())
	codecs.RegisterEncoder(core.FormatPNG, encoder.NewPNG())
	codecs.RegisterEncoder(core.FormatJPEG, encoder.NewJPEG(cfg.Quality))
	codecs.RegisterEncoder(core.FormatGIF, encoder.NewGIF())
	codecs.RegisterEncoder(core.FormatBMP, encoder.NewBMP())
	codecs.RegisterEncoder(core.FormatTIFF, encoder.NewTIFF())

	return &Upscaler{
		cfg:        cfg,
		codecs:     codecs,
		strategies: upscale.Builtin(),
		storage:    storage.NewLocal(0),
		analyzer:   analysis.New(),
		logger:     core.NopLogger{},
	}
}

// SetLogger attaches a structured logger.
func (u *Upscaler) SetLogger(l core.Logger) {
	if l != nil {
		u.logger = l
	}
}

// SetStorage replaces the storage adapter.
func (u *Upscaler) SetStorage(s core.Storage) {
	if s != nil {
		u.storage = s
	}
}

// Codecs exposes the codec registry for custom registrations.
func (u *Upscaler) Codecs() *core.CodecRegistry { return u.codecs }

// Strategies exposes the strategy registry for custom registrations.
func (u *Upscaler) Strategies() *core.StrategyRegistry { return u.strategies }

// BuildPipeline assembles a single-use pipeline for one run.  Middleware
// registers Metrics first, then Timing, then Logging, so Timing's measured
// duration is visible to Metrics but not to Logging.
func (u *Upscaler) BuildPipeline(metrics *core.MetricsRegistry) (*pipeline.Pipeline, error) {
	mode, err := pipeline.ParsePolicyMode(u.cfg.FaultTolerance)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryConfig, "build_pipeline", err)
	}

	p := pipeline.New().
		AddPhase(pipeline.NewPhase("load",
			&pipeline.LoadImage{Storage: u.storage, Codecs: u.codecs},
			pipeline.ValidateImage{})).
		AddPhase(pipeline.NewPhase("analyze",
			&pipeline.AnalyzeContent{Analyzer: u.analyzer},
			pipeline.DetectQualityIssues{})).
		AddPhase(pipeline.NewPhase("preprocess",
			pipeline.PreprocessImage{})).
		AddPhase(pipeline.NewPhase("upscale",
			&pipeline.UpscaleWithStrategy{Strategies: u.strategies})).
		AddPhase(pipeline.NewPhase("postprocess",
			pipeline.PostprocessImage{})).
		AddPhase(pipeline.NewPhase("save",
			&pipeline.SaveImage{Storage: u.storage, Codecs: u.codecs})).
		WithPolicy(pipeline.FaultPolicy{Mode: mode, Retries: u.cfg.Retries}).
		WithMetrics(metrics).
		Use(
			middleware.NewMetrics(metrics),
			middleware.NewTiming(u.logger),
			middleware.NewLogging(u.logger),
		)
	return p, nil
}

// newContext builds the per-run EventContext from the configuration.
func (u *Upscaler) newContext(outputPath string) *core.EventContext {
	return &core.EventContext{
		InputPath:   u.cfg.InputPath,
		OutputPath:  outputPath,
		ScaleFactor: u.cfg.Scale,
		Algorithm:   u.cfg.Algorithm,
		Options: core.RunOptions{
			EnablePreprocess:  u.cfg.EnablePreprocess,
			EnablePostprocess: u.cfg.EnablePostprocess,
			PostSharpen:       u.cfg.PostSharpen,
			MinDimension:      u.cfg.MinDimension,
			MaxDimension:      u.cfg.MaxDimension,
			Quality:           u.cfg.Quality,
		},
	}
}

// OutputPath resolves the configured or derived output path.
func (u *Upscaler) OutputPath() string {
	if u.cfg.OutputPath != "" {
		return u.cfg.OutputPath
	}
	return utils.StemWithSuffix(u.cfg.InputPath, "_upscaled")
}

// RunPipeline executes one event-chain run and returns its result.  A
// failed run is reported through PipelineResult, not the error; the error
// covers engine misuse only.
func (u *Upscaler) RunPipeline(ctx context.Context) (*core.PipelineResult, error) {
	return u.runPipelineTo(ctx, u.OutputPath())
}

func (u *Upscaler) runPipelineTo(ctx context.Context, outputPath string) (*core.PipelineResult, error) {
	metrics := core.NewMetricsRegistry()
	p, err := u.BuildPipeline(metrics)
	if err != nil {
		return nil, err
	}
	ec := u.newContext(outputPath)
	res, err := p.Run(ctx, ec)
	if err != nil {
		return nil, err
	}
	res.AlgorithmUsed = ec.AlgorithmUsed
	return res, nil
}

// TraditionalResult reports one monolithic run.
type TraditionalResult struct {
	Duration   time.Duration
	OutputPath string
	Algorithm  string
}

// RunTraditional performs the same upscale as a single sequential function:
// load, decode, upscale, encode, save.  No analysis, no middleware, no
// fault tolerance.  The first error aborts.
func (u *Upscaler) RunTraditional(ctx context.Context) (*TraditionalResult, error) {
	return u.runTraditionalTo(ctx, u.OutputPath())
}

func (u *Upscaler) runTraditionalTo(ctx context.Context, outputPath string) (*TraditionalResult, error) {
	start := time.Now()

	load := &pipeline.LoadImage{Storage: u.storage, Codecs: u.codecs}
	ec := u.newContext(outputPath)
	if err := load.Execute(ctx, ec); err != nil {
		return nil, err
	}
	if err := (pipeline.ValidateImage{}).Execute(ctx, ec); err != nil {
		return nil, err
	}

	name := u.cfg.Algorithm
	if name == "" {
		name = upscale.DefaultAlgorithm
	}
	strategy, err := u.strategies.Resolve(name)
	if err != nil {
		return nil, err
	}
	ec.Output = strategy.Upscale(ec.Image, ec.ScaleFactor)
	ec.Final = ec.Output

	save := &pipeline.SaveImage{Storage: u.storage, Codecs: u.codecs}
	if err := save.Execute(ctx, ec); err != nil {
		return nil, err
	}

	return &TraditionalResult{
		Duration:   time.Since(start),
		OutputPath: outputPath,
		Algorithm:  name,
	}, nil
}

// ComparisonReport holds the outcome of a compare-mode run.
type ComparisonReport struct {
	Traditional    *TraditionalResult
	TraditionalErr error
	Pipeline       *core.PipelineResult
	PipelineOut    string
	PipelineDur    time.Duration
}

// Success reports whether both runs completed.
func (r *ComparisonReport) Success() bool {
	return r.TraditionalErr == nil && r.Pipeline != nil && r.Pipeline.Success
}

// Overhead returns the pipeline's relative cost over the traditional run as
// a percentage, zero when either side is missing.
func (r *ComparisonReport) Overhead() float64 {
	if r.Traditional == nil || r.Traditional.Duration <= 0 || r.PipelineDur <= 0 {
		return 0
	}
	return (float64(r.PipelineDur)/float64(r.Traditional.Duration) - 1) * 100
}

// WriteReport renders the comparison table.
func (r *ComparisonReport) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-12s %12s %10s  %s\n", "Mode", "Duration", "Overhead", "Output"); err != nil {
		return err
	}
	if r.Traditional != nil {
		if _, err := fmt.Fprintf(w, "%-12s %12s %10s  %s\n",
			"traditional", r.Traditional.Duration.Round(time.Microsecond), "-", r.Traditional.OutputPath); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%-12s %12s %10s  error: %v\n", "traditional", "-", "-", r.TraditionalErr); err != nil {
			return err
		}
	}
	if r.Pipeline != nil && r.Pipeline.Success {
		_, err := fmt.Fprintf(w, "%-12s %12s %9.1f%%  %s\n",
			"pipeline", r.PipelineDur.Round(time.Microsecond), r.Overhead(), r.PipelineOut)
		return err
	}
	var failure error
	if r.Pipeline != nil {
		failure = r.Pipeline.Failure
	}
	_, err := fmt.Fprintf(w, "%-12s %12s %10s  error: %v\n", "pipeline", "-", "-", failure)
	return err
}

// Compare runs the traditional and pipeline paths independently against the
// same input.  Output files get distinct suffixes so neither run clobbers
// the other.  One side failing never stops the other.
func (u *Upscaler) Compare(ctx context.Context) (*ComparisonReport, error) {
	base := u.OutputPath()
	report := &ComparisonReport{
		PipelineOut: utils.StemWithSuffix(base, "_pipeline"),
	}

	tradOut := utils.StemWithSuffix(base, "_traditional")
	report.Traditional, report.TraditionalErr = u.runTraditionalTo(ctx, tradOut)
	if report.Traditional != nil {
		report.Traditional.OutputPath = tradOut
	}

	res, err := u.runPipelineTo(ctx, report.PipelineOut)
	if err != nil {
		return nil, err
	}
	report.Pipeline = res
	report.PipelineDur = res.Duration
	return report, nil
}
