//go:build cgo

// Package vips provides an optional libvips-powered backend.  It supplies
// the only WebP encoder in the module and a hardware-tuned upscaling
// strategy.  Requires libvips installed on the host; nothing outside this
// package imports it, so default builds stay pure Go.
package vips

import (
	"bytes"
	"context"
	"image/png"
	"runtime"

	govips "github.com/davidbyttow/govips/v2/vips"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
	"github.com/Skryldev/image-upscaler/upscale"
	"github.com/Skryldev/image-upscaler/utils"
)

// BackendConfig configures the libvips backend.
type BackendConfig struct {
	DefaultQuality int
	MaxCacheSize   int
	MaxWorkers     int
	ReportLeaks    bool
}

// Backend is a libvips-powered WebP Encoder.  Safe for concurrent use
// across goroutines.
type Backend struct {
	cfg BackendConfig
}

// NewBackend initialises libvips and returns a ready Backend.
// Call Shutdown() when the process exits.
func NewBackend(cfg BackendConfig) *Backend {
	if cfg.DefaultQuality <= 0 {
		cfg.DefaultQuality = 85
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = runtime.NumCPU()
	}
	govips.Startup(&govips.Config{
		ConcurrencyLevel: cfg.MaxWorkers,
		MaxCacheSize:     cfg.MaxCacheSize,
		ReportLeaks:      cfg.ReportLeaks,
		CollectStats:     true,
	})
	return &Backend{cfg: cfg}
}

// Shutdown releases all libvips resources. Call once at process exit.
func (b *Backend) Shutdown() {
	govips.Shutdown()
}

func (b *Backend) CanEncode(f core.Format) bool { return f == core.FormatWebP }

func (b *Backend) Encode(ctx context.Context, img *core.RawImage, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "vips.encode", err)
	}
	if img.Empty() {
		return nil, apperrors.New(apperrors.CategoryIO, "vips.encode", apperrors.ErrEmptyInput)
	}

	ref, err := importRaw(img)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "vips.encode.import", err)
	}
	defer ref.Close()

	quality := opts.Quality
	if quality <= 0 {
		quality = b.cfg.DefaultQuality
	}
	ep := govips.NewWebpExportParams()
	ep.Quality = quality
	ep.Lossless = opts.Lossless
	buf, _, err := ref.ExportWebp(ep)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "vips.encode.webp", err)
	}
	return buf, nil
}

// Upscaler returns a core.Upscaler backed by vips_resize() with the
// Lanczos3 kernel.  It trades the module's bit-exact determinism for
// libvips throughput, so it is never picked automatically; callers opt in
// by registering it and naming it explicitly.  If libvips rejects an
// image the pure-Go lanczos path takes over.
func (b *Backend) Upscaler() core.Upscaler {
	return &vipsUpscaler{backend: b, fallback: upscale.NewLanczos()}
}

type vipsUpscaler struct {
	backend  *Backend
	fallback core.Upscaler
}

func (v *vipsUpscaler) Name() string    { return "vips" }
func (v *vipsUpscaler) Tier() core.Tier { return core.TierFast }

func (v *vipsUpscaler) Upscale(img *core.RawImage, scale float64) *core.RawImage {
	dstW, dstH := utils.OutputDimensions(img.Width, img.Height, scale)
	ref, err := importRaw(img)
	if err != nil {
		return v.fallback.Upscale(img, scale)
	}
	defer ref.Close()

	hscale := float64(dstW) / float64(img.Width)
	vscale := float64(dstH) / float64(img.Height)
	if err := ref.ResizeWithVScale(hscale, vscale, govips.KernelLanczos3); err != nil {
		return v.fallback.Upscale(img, scale)
	}

	out, err := exportRaw(ref, img.Format)
	if err != nil {
		return v.fallback.Upscale(img, scale)
	}
	return out
}

// importRaw round-trips the pixel buffer through PNG, which is the lossless
// interchange govips accepts from a buffer.
func importRaw(img *core.RawImage) (*govips.ImageRef, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.NRGBA()); err != nil {
		return nil, err
	}
	return govips.NewImageFromBuffer(buf.Bytes())
}

func exportRaw(ref *govips.ImageRef, format core.Format) (*core.RawImage, error) {
	data, _, err := ref.ExportPng(govips.NewPngExportParams())
	if err != nil {
		return nil, err
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	raw := core.NewRawImage(decoded.Bounds().Dx(), decoded.Bounds().Dy())
	raw.Format = format
	nrgba := raw.NRGBA()
	for y := decoded.Bounds().Min.Y; y < decoded.Bounds().Max.Y; y++ {
		for x := decoded.Bounds().Min.X; x < decoded.Bounds().Max.X; x++ {
			nrgba.Set(x-decoded.Bounds().Min.X, y-decoded.Bounds().Min.Y, decoded.At(x, y))
		}
	}
	return raw, nil
}

// Register wires the backend into the codec and strategy registries.
func Register(codecs *core.CodecRegistry, strategies *core.StrategyRegistry, b *Backend) {
	codecs.RegisterEncoder(core.FormatWebP, b)
	up := b.Upscaler()
	strategies.Register(up.Name(), up)
}

var _ core.Encoder = (*Backend)(nil)
var _ core.Upscaler = (*vipsUpscaler)(nil)
