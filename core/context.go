package core

// RunOptions carries the per-run switches events consult.  They are resolved
// from configuration before the pipeline is built and never change mid-run.
type RunOptions struct {
	EnablePreprocess  bool
	EnablePostprocess bool
	// PostSharpen applies an unsharp pass during postprocessing.  Off by
	// default so pipeline output stays byte-identical to the traditional
	// path for the same algorithm.
	PostSharpen  bool
	MinDimension int
	MaxDimension int
	Quality      int // encode quality for lossy formats
}

// EventContext is the mutable data bag threaded through a single pipeline
// run.  It is exclusively owned by that run; concurrent runs must each
// allocate their own.
type EventContext struct {
	InputPath  string
	OutputPath string

	ScaleFactor float64
	// Algorithm is the explicit override; empty means auto-select from the
	// content profile (falling back to lanczos3).
	Algorithm string
	// AlgorithmUsed is the name UpscaleWithStrategy actually resolved.
	AlgorithmUsed string

	// Image is the working buffer: written by LoadImage, possibly replaced
	// by PreprocessImage.  Once populated its dimensions and format are
	// valid for every later event.
	Image        *RawImage
	SourceFormat Format
	Validated    bool

	Profile       *ContentProfile
	QualityIssues []string
	NeedsDenoise  bool
	NeedsSharpen  bool

	// Output is the upscaled buffer; Final is the finalized buffer the
	// SaveImage event persists.
	Output *RawImage
	Final  *RawImage

	Options RunOptions

	// Errors accumulates non-fatal failures recorded under BestEffort.
	Errors []error
}

// RecordError appends a degraded-mode failure to the context.
func (ec *EventContext) RecordError(err error) {
	if err != nil {
		ec.Errors = append(ec.Errors, err)
	}
}
