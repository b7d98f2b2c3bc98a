package core

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// ── Codec registry ────────────────────────────────────────────────────────────

// CodecRegistry maps Format values to Decoder/Encoder implementations.
type CodecRegistry struct {
	mu       sync.RWMutex
	decoders map[Format]Decoder
	encoders map[Format]Encoder
}

// NewCodecRegistry returns an empty CodecRegistry.
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{
		decoders: make(map[Format]Decoder),
		encoders: make(map[Format]Encoder),
	}
}

func (r *CodecRegistry) RegisterDecoder(f Format, d Decoder) {
	r.mu.Lock()
	r.decoders[f] = d
	r.mu.Unlock()
}

func (r *CodecRegistry) RegisterEncoder(f Format, e Encoder) {
	r.mu.Lock()
	r.encoders[f] = e
	r.mu.Unlock()
}

func (r *CodecRegistry) DecoderFor(f Format) (Decoder, bool) {
	r.mu.RLock()
	d, ok := r.decoders[f]
	r.mu.RUnlock()
	return d, ok
}

func (r *CodecRegistry) EncoderFor(f Format) (Encoder, bool) {
	r.mu.RLock()
	e, ok := r.encoders[f]
	r.mu.RUnlock()
	return e, ok
}

// ── Strategy registry ─────────────────────────────────────────────────────────

// StrategyRegistry is the name-keyed closed set of upscaling strategies,
// built once at startup.
type StrategyRegistry struct {
	mu         sync.RWMutex
	strategies map[string]Upscaler
}

// NewStrategyRegistry returns an empty StrategyRegistry.
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{strategies: make(map[string]Upscaler)}
}

// Register adds a strategy under the given name, replacing any previous one.
func (r *StrategyRegistry) Register(name string, u Upscaler) {
	r.mu.Lock()
	r.strategies[name] = u
	r.mu.Unlock()
}

// Resolve returns the strategy registered under name, or an
// UnsupportedAlgorithm error for unknown names.
func (r *StrategyRegistry) Resolve(name string) (Upscaler, error) {
	r.mu.RLock()
	u, ok := r.strategies[name]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.New(apperrors.CategoryAlgorithm, "registry.resolve",
			fmt.Errorf("%w: %q", apperrors.ErrUnsupportedAlgorithm, name))
	}
	return u, nil
}

// Names returns the registered strategy names, sorted.
func (r *StrategyRegistry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
