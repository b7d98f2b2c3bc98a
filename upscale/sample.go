// Package upscale provides the built-in upscaling strategies, from instant
// nearest-neighbor to iterative optimization methods.  Every strategy is
// deterministic and honors the ceiling rule for output dimensions.
package upscale

import (
	"github.com/Skryldev/image-upscaler/core"
)

// lerp interpolates one channel between a and b by t in [0, 1].
func lerp(a, b uint8, t float64) uint8 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// lerpPixel interpolates all four channels.
func lerpPixel(img *core.RawImage, x1, y1, x2, y2 int, t float64) (uint8, uint8, uint8, uint8) {
	r1, g1, b1, a1 := img.Clamped(x1, y1)
	r2, g2, b2, a2 := img.Clamped(x2, y2)
	return lerp(r1, r2, t), lerp(g1, g2, t), lerp(b1, b2, t), lerp(a1, a2, t)
}

// accum builds a weighted average over sampled pixels.
type accum struct {
	r, g, b, a float64
	weight     float64
}

func (ac *accum) add(img *core.RawImage, x, y int, w float64) {
	r, g, b, a := img.Clamped(x, y)
	ac.r += float64(r) * w
	ac.g += float64(g) * w
	ac.b += float64(b) * w
	ac.a += float64(a) * w
	ac.weight += w
}

func (ac *accum) pixel() (uint8, uint8, uint8, uint8) {
	if ac.weight == 0 {
		return 0, 0, 0, 0
	}
	return clampChannel(ac.r / ac.weight),
		clampChannel(ac.g / ac.weight),
		clampChannel(ac.b / ac.weight),
		clampChannel(ac.a / ac.weight)
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// srcCoord maps an output coordinate into continuous source space.
func srcCoord(dst int, scale float64) float64 {
	return (float64(dst)+0.5)/scale - 0.5
}
