package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
	"github.com/Skryldev/image-upscaler/upscale"
	"github.com/Skryldev/image-upscaler/utils"
)

// Quality-issue thresholds, matched to the analyzer's measurement scales.
const (
	noisyImageLevel  = 0.15
	blurryImageLevel = 0.3
	defaultMinDim    = 1
	defaultMaxDim    = 16384
)

// ── LoadImage ─────────────────────────────────────────────────────────────────

// LoadImage reads the input file and decodes it into the working buffer.
// Format detection prefers magic bytes over the file extension.
type LoadImage struct {
	Storage core.Storage
	Codecs  *core.CodecRegistry
}

func (e *LoadImage) Name() string                  { return "LoadImage" }
func (e *LoadImage) Criticality() core.Criticality { return core.Critical }

func (e *LoadImage) Execute(ctx context.Context, ec *core.EventContext) error {
	rc, err := e.Storage.Get(ctx, ec.InputPath)
	if err != nil {
		return apperrors.Wrap(apperrors.CategoryIO, e.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return apperrors.Wrap(apperrors.CategoryIO, e.Name(), err)
	}
	if len(data) == 0 {
		return apperrors.New(apperrors.CategoryIO, e.Name(), apperrors.ErrEmptyInput)
	}

	format := utils.DetectFormat(data)
	if format == core.FormatUnknown {
		format = utils.FormatFromPath(ec.InputPath)
	}
	dec, ok := e.Codecs.DecoderFor(format)
	if !ok {
		return apperrors.New(apperrors.CategoryIO, e.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, format))
	}

	img, err := dec.Decode(ctx, bytes.NewReader(data))
	if err != nil {
		return apperrors.Wrap(apperrors.CategoryIO, e.Name(), err)
	}
	ec.Image = img
	ec.SourceFormat = format
	return nil
}

// ── ValidateImage ─────────────────────────────────────────────────────────────

// ValidateImage checks the decoded buffer against the configured dimension
// limits before any expensive work starts.
type ValidateImage struct{}

func (e ValidateImage) Name() string                  { return "ValidateImage" }
func (e ValidateImage) Criticality() core.Criticality { return core.Critical }

func (e ValidateImage) Execute(_ context.Context, ec *core.EventContext) error {
	img := ec.Image
	if img == nil || img.Empty() {
		return apperrors.New(apperrors.CategoryValidation, e.Name(), apperrors.ErrMissingImage)
	}

	minDim := ec.Options.MinDimension
	if minDim <= 0 {
		minDim = defaultMinDim
	}
	maxDim := ec.Options.MaxDimension
	if maxDim <= 0 {
		maxDim = defaultMaxDim
	}
	if img.Width < minDim || img.Height < minDim || img.Width > maxDim || img.Height > maxDim {
		return apperrors.New(apperrors.CategoryValidation, e.Name(),
			fmt.Errorf("%w: %dx%d outside [%d, %d]",
				apperrors.ErrInvalidDimensions, img.Width, img.Height, minDim, maxDim))
	}

	ec.Validated = true
	return nil
}

// ── AnalyzeContent ────────────────────────────────────────────────────────────

// AnalyzeContent profiles the image so later events can pick a strategy.
// The run survives its failure; the upscaler then falls back to the default
// algorithm.
type AnalyzeContent struct {
	Analyzer core.ContentAnalyzer
}

func (e *AnalyzeContent) Name() string                  { return "AnalyzeContent" }
func (e *AnalyzeContent) Criticality() core.Criticality { return core.NonCritical }

func (e *AnalyzeContent) Execute(_ context.Context, ec *core.EventContext) error {
	if ec.Image == nil {
		return apperrors.New(apperrors.CategoryAnalysis, e.Name(), apperrors.ErrMissingImage)
	}
	ec.Profile = e.Analyzer.Analyze(ec.Image)
	return nil
}

// ── DetectQualityIssues ───────────────────────────────────────────────────────

// DetectQualityIssues flags noise and blur from the content profile, setting
// the preprocessing hints.
type DetectQualityIssues struct{}

func (e DetectQualityIssues) Name() string                  { return "DetectQualityIssues" }
func (e DetectQualityIssues) Criticality() core.Criticality { return core.NonCritical }

func (e DetectQualityIssues) Execute(_ context.Context, ec *core.EventContext) error {
	p := ec.Profile
	if p == nil {
		return apperrors.New(apperrors.CategoryAnalysis, e.Name(),
			fmt.Errorf("no content profile available"))
	}
	if p.NoiseLevel > noisyImageLevel {
		ec.QualityIssues = append(ec.QualityIssues, fmt.Sprintf("noisy (level %.2f)", p.NoiseLevel))
		ec.NeedsDenoise = true
	}
	if p.EdgeSharpness < blurryImageLevel && p.Type != core.ContentPhoto {
		ec.QualityIssues = append(ec.QualityIssues, fmt.Sprintf("blurry (sharpness %.2f)", p.EdgeSharpness))
		ec.NeedsSharpen = true
	}
	return nil
}

// ── PreprocessImage ───────────────────────────────────────────────────────────

// PreprocessImage cleans the working buffer before upscaling: a box-filter
// denoise when the image was flagged noisy, an unsharp pass when flagged
// blurry.  Disabled or unneeded preprocessing leaves the buffer untouched.
type PreprocessImage struct{}

func (e PreprocessImage) Name() string                  { return "PreprocessImage" }
func (e PreprocessImage) Criticality() core.Criticality { return core.NonCritical }

func (e PreprocessImage) Execute(_ context.Context, ec *core.EventContext) error {
	if !ec.Options.EnablePreprocess || ec.Image == nil {
		return nil
	}
	if ec.NeedsDenoise {
		ec.Image = boxDenoise(ec.Image)
	}
	if ec.NeedsSharpen {
		ec.Image = unsharp(ec.Image)
	}
	return nil
}

// ── UpscaleWithStrategy ───────────────────────────────────────────────────────

// UpscaleWithStrategy resolves the strategy and produces the upscaled
// buffer.  Resolution order: explicit override, then the content profile's
// recommendation, then the default.
type UpscaleWithStrategy struct {
	Strategies *core.StrategyRegistry
}

func (e *UpscaleWithStrategy) Name() string                  { return "UpscaleWithStrategy" }
func (e *UpscaleWithStrategy) Criticality() core.Criticality { return core.Critical }

func (e *UpscaleWithStrategy) Execute(_ context.Context, ec *core.EventContext) error {
	if ec.Image == nil {
		return apperrors.New(apperrors.CategoryAlgorithm, e.Name(), apperrors.ErrMissingImage)
	}

	name := ec.Algorithm
	if name == "" && ec.Profile != nil {
		name = ec.Profile.Recommended
	}
	if name == "" {
		name = upscale.DefaultAlgorithm
	}

	strategy, err := e.Strategies.Resolve(name)
	if err != nil {
		return apperrors.Wrap(apperrors.CategoryAlgorithm, e.Name(), err)
	}
	ec.AlgorithmUsed = name
	ec.Output = strategy.Upscale(ec.Image, ec.ScaleFactor)
	if ec.Output == nil || ec.Output.Empty() {
		return apperrors.New(apperrors.CategoryAlgorithm, e.Name(),
			fmt.Errorf("strategy %q produced no output", name))
	}
	return nil
}

// ── PostprocessImage ──────────────────────────────────────────────────────────

// PostprocessImage finalizes the output buffer.  The optional sharpen pass
// is off by default so the pipeline and traditional paths stay
// byte-identical for the same algorithm.
type PostprocessImage struct{}

func (e PostprocessImage) Name() string                  { return "PostprocessImage" }
func (e PostprocessImage) Criticality() core.Criticality { return core.NonCritical }

func (e PostprocessImage) Execute(_ context.Context, ec *core.EventContext) error {
	if ec.Output == nil {
		return apperrors.New(apperrors.CategoryEvent, e.Name(), apperrors.ErrMissingImage)
	}
	ec.Final = ec.Output
	if ec.Options.EnablePostprocess && ec.Options.PostSharpen {
		ec.Final = unsharp(ec.Output)
	}
	return nil
}

// ── SaveImage ─────────────────────────────────────────────────────────────────

// SaveImage encodes the final buffer in the format named by the output
// extension and persists it.
type SaveImage struct {
	Storage core.Storage
	Codecs  *core.CodecRegistry
}

func (e *SaveImage) Name() string                  { return "SaveImage" }
func (e *SaveImage) Criticality() core.Criticality { return core.Critical }

func (e *SaveImage) Execute(ctx context.Context, ec *core.EventContext) error {
	final := ec.Final
	if final == nil {
		final = ec.Output
	}
	if final == nil {
		return apperrors.New(apperrors.CategoryIO, e.Name(), apperrors.ErrMissingImage)
	}

	format := utils.FormatFromPath(ec.OutputPath)
	if format == core.FormatUnknown {
		format = ec.SourceFormat
	}
	enc, ok := e.Codecs.EncoderFor(format)
	if !ok {
		return apperrors.New(apperrors.CategoryIO, e.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, format))
	}

	data, err := enc.Encode(ctx, final, core.EncodeOptions{Quality: ec.Options.Quality})
	if err != nil {
		return apperrors.Wrap(apperrors.CategoryIO, e.Name(), err)
	}
	if err := e.Storage.Put(ctx, ec.OutputPath, bytes.NewReader(data)); err != nil {
		return apperrors.Wrap(apperrors.CategoryStorage, e.Name(), err)
	}
	return nil
}
