package core

import (
	"time"
)

// Format identifies an image codec.
type Format string

const (
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpeg"
	FormatGIF     Format = "gif"
	FormatBMP     Format = "bmp"
	FormatTIFF    Format = "tiff"
	FormatWebP    Format = "webp"
	FormatUnknown Format = "unknown"
)

// Criticality tells the fault-tolerance policy how to treat an event failure.
type Criticality int

const (
	// Critical events abort the run on failure under every policy.
	Critical Criticality = iota
	// NonCritical events may fail without sinking the run under BestEffort.
	NonCritical
)

func (c Criticality) String() string {
	if c == Critical {
		return "critical"
	}
	return "non-critical"
}

// Tier groups upscaling strategies by computational cost.
type Tier int

const (
	TierInstant Tier = iota // O(n): nearest neighbor, bilinear
	TierFast                // O(n) with higher constants: bicubic, lanczos
	TierMedium              // O(n log n): edge-directed
	TierSlow                // iterative: back-projection, total variation
)

func (t Tier) String() string {
	switch t {
	case TierInstant:
		return "instant"
	case TierFast:
		return "fast"
	case TierMedium:
		return "medium"
	case TierSlow:
		return "slow"
	}
	return "unknown"
}

// ContentType is the coarse classification produced by content analysis.
type ContentType string

const (
	ContentPixelArt   ContentType = "pixel-art"
	ContentPhoto      ContentType = "photo"
	ContentText       ContentType = "text"
	ContentScreenshot ContentType = "screenshot"
	ContentArtwork    ContentType = "artwork"
	ContentMixed      ContentType = "mixed"
)

// RecommendedAlgorithm returns the strategy name best suited to the content.
func (c ContentType) RecommendedAlgorithm() string {
	switch c {
	case ContentPixelArt, ContentText:
		return "nearest"
	case ContentPhoto, ContentArtwork:
		return "lanczos3"
	default:
		return "bicubic"
	}
}

// ContentProfile is the structured output of content analysis.  Identical
// pixel buffers always produce identical profiles.
type ContentProfile struct {
	ColorCount         int
	EdgeSharpness      float64 // 0 = smooth, 1 = sharp
	GradientSmoothness float64 // 0 = noisy, 1 = smooth
	TextLikelihood     float64
	NoiseLevel         float64
	Type               ContentType
	Recommended        string
}

// EventOutcome records one completed event attempt in execution order.
type EventOutcome struct {
	Event    string
	Attempt  int // 0 for the first invocation, 1.. for retries
	Success  bool
	Message  string
	Err      error
	Duration time.Duration
}

// PipelineResult aggregates a single run.
type PipelineResult struct {
	Success  bool
	Outcomes []EventOutcome // every attempt, in execution order
	Duration time.Duration
	Metrics  *MetricsSnapshot
	// AlgorithmUsed is the strategy the upscale event resolved, empty when
	// the run never reached it.
	AlgorithmUsed string
	// Failure is the first error that sank the run, nil when Success.
	Failure error
}

// Invocation is the per-attempt scratch value threaded through the middleware
// stack.  The Timing middleware fills Start/Duration; the engine sets Err
// before after-hooks run.
type Invocation struct {
	Event       string
	Criticality Criticality
	Attempt     int
	Start       time.Time
	Duration    time.Duration
	Err         error
}
