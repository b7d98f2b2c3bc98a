// Package config holds the runtime configuration for the upscaler CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// RunMode selects how the CLI executes a job.
type RunMode string

const (
	ModePipeline    RunMode = "pipeline"
	ModeTraditional RunMode = "traditional"
	ModeCompare     RunMode = "compare"
)

// Config is the top-level configuration struct.  All fields have safe
// defaults so callers can start from Default() and override only what they
// need.
type Config struct {
	InputPath  string
	OutputPath string // empty: derived from InputPath

	Scale float64
	Mode  RunMode
	// Algorithm overrides automatic selection; empty means auto.
	Algorithm string

	// Fault tolerance: "fail-fast", "best-effort" or "retry".
	FaultTolerance string
	Retries        int // extra attempts under "retry"

	EnablePreprocess  bool
	EnablePostprocess bool
	PostSharpen       bool

	// Dimension limits enforced during validation.
	MinDimension int
	MaxDimension int

	Quality int // encode quality for lossy formats, 1-100

	LogLevel   string // "debug", "info", "warn", "error"
	LogConsole bool
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Scale:             2,
		Mode:              ModePipeline,
		FaultTolerance:    "best-effort",
		Retries:           2,
		EnablePreprocess:  true,
		EnablePostprocess: true,
		MinDimension:      1,
		MaxDimension:      16384,
		Quality:           85,
		LogLevel:          "info",
		LogConsole:        true,
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if c.InputPath == "" {
		return errors.New("config: InputPath is required")
	}
	if c.Scale <= 1 {
		return errors.New("config: Scale must be greater than 1")
	}
	if c.Scale > 100 {
		return errors.New("config: Scale must not exceed 100")
	}
	switch c.Mode {
	case ModePipeline, ModeTraditional, ModeCompare:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.FaultTolerance {
	case "fail-fast", "failfast", "best-effort", "besteffort", "retry":
	default:
		return fmt.Errorf("config: unknown fault-tolerance mode %q", c.FaultTolerance)
	}
	if c.Retries < 0 {
		return errors.New("config: Retries must not be negative")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return errors.New("config: Quality must be between 1 and 100")
	}
	if c.MinDimension < 1 {
		return errors.New("config: MinDimension must be at least 1")
	}
	if c.MaxDimension < c.MinDimension {
		return errors.New("config: MaxDimension must not be below MinDimension")
	}
	return nil
}

// FromEnv overlays UPSCALE_* environment variables onto c.  Unset variables
// leave the corresponding field untouched.
func FromEnv(c Config) Config {
	if v := os.Getenv("UPSCALE_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Scale = f
		}
	}
	if v := os.Getenv("UPSCALE_MODE"); v != "" {
		c.Mode = RunMode(v)
	}
	if v := os.Getenv("UPSCALE_ALGORITHM"); v != "" {
		c.Algorithm = v
	}
	if v := os.Getenv("UPSCALE_FAULT_TOLERANCE"); v != "" {
		c.FaultTolerance = v
	}
	if v := os.Getenv("UPSCALE_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retries = n
		}
	}
	if v := os.Getenv("UPSCALE_QUALITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Quality = n
		}
	}
	if v := os.Getenv("UPSCALE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return c
}
