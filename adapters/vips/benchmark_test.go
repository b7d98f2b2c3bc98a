//go:build cgo

package vips_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Skryldev/image-upscaler/adapters/vips"
	"github.com/Skryldev/image-upscaler/core"
	"github.com/Skryldev/image-upscaler/upscale"
)

func makeGradient(tb testing.TB, w, h int) *core.RawImage {
	tb.Helper()
	img := core.NewRawImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, uint8(x*255/w), uint8(y*255/h), 128, 255)
		}
	}
	img.Format = core.FormatPNG
	return img
}

func newBackend(tb testing.TB) *vips.Backend {
	tb.Helper()
	return vips.NewBackend(vips.BackendConfig{DefaultQuality: 85})
}

func TestVipsUpscalerDimensions(t *testing.T) {
	backend := newBackend(t)
	defer backend.Shutdown()

	img := makeGradient(t, 64, 48)
	out := backend.Upscaler().Upscale(img, 2.5)
	if out.Width != 160 || out.Height != 120 {
		t.Fatalf("got %dx%d, want 160x120", out.Width, out.Height)
	}
}

func TestVipsWebPEncode(t *testing.T) {
	backend := newBackend(t)
	defer backend.Shutdown()

	img := makeGradient(t, 32, 32)
	data, err := backend.Encode(context.Background(), img, core.EncodeOptions{Quality: 80})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) {
		t.Fatalf("output is not a RIFF container")
	}
}

func BenchmarkUpscale_PureGo_Lanczos3(b *testing.B) {
	img := makeGradient(b, 640, 480)
	up := upscale.NewLanczos()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		up.Upscale(img, 2)
	}
}

func BenchmarkUpscale_Vips_Lanczos3(b *testing.B) {
	backend := newBackend(b)
	defer backend.Shutdown()
	img := makeGradient(b, 640, 480)
	up := backend.Upscaler()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		up.Upscale(img, 2)
	}
}
