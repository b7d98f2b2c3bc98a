package analysis

import (
	"testing"

	"github.com/Skryldev/image-upscaler/core"
)

func checkerboard(w, h int) *core.RawImage {
	img := core.NewRawImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetRGBA(x, y, v, v, v, 255)
		}
	}
	return img
}

func diagonalGradient(w, h int) *core.RawImage {
	img := core.NewRawImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, uint8(x), uint8(y), 100, 255)
		}
	}
	return img
}

func noisy(w, h int) *core.RawImage {
	img := core.NewRawImage(w, h)
	seed := uint32(12345)
	next := func() uint8 {
		seed = seed*1664525 + 1013904223
		return uint8(seed >> 24)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, next(), next(), next(), 255)
		}
	}
	return img
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New()
	img := noisy(64, 64)

	p1 := a.Analyze(img)
	p2 := a.Analyze(img.Clone())
	if *p1 != *p2 {
		t.Errorf("identical buffers produced different profiles:\n%+v\n%+v", p1, p2)
	}
}

func TestAnalyze_PixelArt(t *testing.T) {
	p := New().Analyze(checkerboard(64, 64))

	if p.ColorCount != 2 {
		t.Errorf("colors: got %d, want 2", p.ColorCount)
	}
	if p.EdgeSharpness < 0.9 {
		t.Errorf("sharpness: got %.2f", p.EdgeSharpness)
	}
	if p.Type != core.ContentPixelArt {
		t.Errorf("type: got %v, want pixel-art", p.Type)
	}
	if p.Recommended != "nearest" {
		t.Errorf("recommended: got %q, want nearest", p.Recommended)
	}
}

func TestAnalyze_PhotoLikeGradient(t *testing.T) {
	p := New().Analyze(diagonalGradient(128, 128))

	if p.GradientSmoothness < 0.9 {
		t.Errorf("smoothness: got %.2f", p.GradientSmoothness)
	}
	if p.ColorCount <= 4096 {
		t.Errorf("colors: got %d, want >4096", p.ColorCount)
	}
	if p.Type != core.ContentPhoto {
		t.Errorf("type: got %v, want photo", p.Type)
	}
	if p.Recommended != "lanczos3" {
		t.Errorf("recommended: got %q, want lanczos3", p.Recommended)
	}
}

func TestAnalyze_NoiseLevel(t *testing.T) {
	a := New()
	if got := a.Analyze(noisy(64, 64)).NoiseLevel; got < 0.15 {
		t.Errorf("noise image level: got %.3f, want >= 0.15", got)
	}
	if got := a.Analyze(diagonalGradient(64, 64)).NoiseLevel; got > 0.05 {
		t.Errorf("gradient noise level: got %.3f, want near 0", got)
	}
}

func TestAnalyze_TextLikelihood(t *testing.T) {
	// Tiny dark glyph blobs on white, one per 8x8 block.
	img := core.NewRawImage(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(255)
			if x%8 < 2 && y%8 < 3 {
				v = 0
			}
			img.SetRGBA(x, y, v, v, v, 255)
		}
	}
	p := New().Analyze(img)
	if p.TextLikelihood < 0.9 {
		t.Errorf("text likelihood: got %.2f", p.TextLikelihood)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		colors     int
		sharpness  float64
		smoothness float64
		text       float64
		want       core.ContentType
	}{
		{"few colors, sharp", 16, 0.95, 0.2, 0.1, core.ContentPixelArt},
		{"few colors, soft", 16, 0.2, 0.2, 0.1, core.ContentMixed},
		{"text", 2000, 0.8, 0.2, 0.7, core.ContentText},
		{"screenshot", 2000, 0.3, 0.2, 0.4, core.ContentScreenshot},
		{"photo", 9000, 0.2, 0.8, 0.05, core.ContentPhoto},
		{"many colors, rough", 9000, 0.2, 0.3, 0.05, core.ContentMixed},
		{"artwork range", 3000, 0.2, 0.3, 0.05, core.ContentArtwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.colors, tt.sharpness, tt.smoothness, tt.text); got != tt.want {
				t.Errorf("classify = %v, want %v", got, tt.want)
			}
		})
	}
}
