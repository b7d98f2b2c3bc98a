package errors

import (
	"errors"
	"fmt"
)

// Category classifies error types for targeted handling and reporting.
type Category string

const (
	CategoryIO         Category = "io"
	CategoryValidation Category = "validation"
	CategoryAlgorithm  Category = "algorithm"
	CategoryAnalysis   Category = "analysis"
	CategoryEvent      Category = "event"
	CategoryStorage    Category = "storage"
	CategoryConfig     Category = "config"
)

// ProcessingError is the structured error type used throughout the module.
// For event failures Op carries the event name, so a ProcessingError with
// CategoryEvent reads as "event X failed: cause".
type ProcessingError struct {
	Category Category
	Op       string // operation or event name
	Err      error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// New creates a ProcessingError.
func New(category Category, op string, err error) *ProcessingError {
	return &ProcessingError{Category: category, Op: op, Err: err}
}

// Wrap wraps an existing error with context.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, cat Category) bool {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Category == cat
	}
	return false
}

// CategoryOf returns the category of err, or CategoryEvent when err carries
// no ProcessingError in its chain.
func CategoryOf(err error) Category {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return CategoryEvent
}

// Sentinel errors for common failure modes.
var (
	ErrUnsupportedFormat    = errors.New("unsupported image format")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrInvalidDimensions    = errors.New("invalid dimensions")
	ErrEmptyInput           = errors.New("empty input")
	ErrMissingImage         = errors.New("no image in context")
	ErrPipelineConsumed     = errors.New("pipeline already executed")
)
