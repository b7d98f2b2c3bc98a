package core

import (
	"context"
	"io"
)

// Event is a named, single-purpose pipeline stage.  Execute mutates the
// shared context and returns nil on success; it must never terminate the
// process itself.  An event is an indivisible blocking unit: the engine only
// makes continue/retry/abort decisions at event boundaries.
type Event interface {
	Name() string
	Criticality() Criticality
	Execute(ctx context.Context, ec *EventContext) error
}

// Middleware wraps every event attempt.  Before-hooks fire in registration
// order, after-hooks in exact reverse order.  After-hooks run even when the
// event fails.
type Middleware interface {
	Before(ctx context.Context, inv *Invocation, ec *EventContext)
	After(ctx context.Context, inv *Invocation, ec *EventContext)
}

// Upscaler is a pluggable, named upscaling strategy.  Upscale must be
// deterministic: identical inputs yield byte-identical outputs.  Output
// dimensions are ceil(width*scale) x ceil(height*scale), per axis.
type Upscaler interface {
	Name() string
	Tier() Tier
	Upscale(img *RawImage, scale float64) *RawImage
}

// ContentAnalyzer classifies an image from its pixel statistics.  The
// classification is a pure function of the buffer contents.
type ContentAnalyzer interface {
	Analyze(img *RawImage) *ContentProfile
}

// Decoder converts raw bytes into a RawImage.
// Implementations live in adapters/decoder/.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) (*RawImage, error)
	CanDecode(format Format) bool
}

// Encoder serialises a RawImage to bytes in a target format.
// Implementations live in adapters/encoder/.
type Encoder interface {
	Encode(ctx context.Context, img *RawImage, opts EncodeOptions) ([]byte, error)
	CanEncode(format Format) bool
}

// EncodeOptions carries format-specific encoding parameters.
type EncodeOptions struct {
	Quality  int  // 1-100; 0 = encoder default
	Lossless bool // WebP lossless mode
}

// Storage persists processed images and retrieves inputs.
// Implementations live in adapters/storage/.
type Storage interface {
	Put(ctx context.Context, path string, r io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
}

// Logger is a minimal structured logging interface.  Fields are alternating
// key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// NopLogger discards everything.  Useful for tests and as a default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
