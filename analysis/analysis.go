// Package analysis classifies image content to drive automatic strategy
// selection.  Every measurement is a pure function of the pixel buffer, so
// identical buffers always produce identical profiles.
package analysis

import (
	"math"

	"github.com/Skryldev/image-upscaler/core"
)

// Classification thresholds.
const (
	pixelArtMaxColors  = 256
	photoMinColors     = 4096
	artworkMaxColors   = 8192
	edgeThreshold      = 10.0 // min channel diff to count as an edge
	sharpEdgeThreshold = 50.0
	textBlockSize      = 8
	textBlockContrast  = 100
)

// Analyzer implements core.ContentAnalyzer.
type Analyzer struct{}

// New returns a content analyzer.
func New() *Analyzer { return &Analyzer{} }

// Analyze measures the buffer and classifies its content.
func (a *Analyzer) Analyze(img *core.RawImage) *core.ContentProfile {
	colors := countUniqueColors(img)
	sharpness := edgeSharpness(img)
	smoothness := gradientSmoothness(img)
	text := textLikelihood(img)
	noise := noiseLevel(img)

	ct := classify(colors, sharpness, smoothness, text)
	return &core.ContentProfile{
		ColorCount:         colors,
		EdgeSharpness:      sharpness,
		GradientSmoothness: smoothness,
		TextLikelihood:     text,
		NoiseLevel:         noise,
		Type:               ct,
		Recommended:        ct.RecommendedAlgorithm(),
	}
}

// countUniqueColors samples roughly 10k pixels and counts distinct RGB
// triples, bailing out early once the image is clearly not pixel art.
func countUniqueColors(img *core.RawImage) int {
	colors := make(map[uint32]struct{})
	step := img.Width * img.Height / 10000
	if step < 1 {
		step = 1
	}
	n := img.Width * img.Height
	for i := 0; i < n; i += step {
		x, y := i%img.Width, i/img.Width
		r, g, b, _ := img.RGBAAt(x, y)
		key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		colors[key] = struct{}{}
		if len(colors) > photoMinColors {
			return len(colors)
		}
	}
	return len(colors)
}

// edgeSharpness returns the fraction of edges that are sharp (0 smooth,
// 1 sharp).
func edgeSharpness(img *core.RawImage) float64 {
	var sharp, total int
	for y := 1; y < img.Height-1; y++ {
		for x := 1; x < img.Width-1; x++ {
			diffH := pixelDiff(img, x, y, x+1, y)
			diffV := pixelDiff(img, x, y, x, y+1)
			if diffH > edgeThreshold || diffV > edgeThreshold {
				total++
				if diffH > sharpEdgeThreshold || diffV > sharpEdgeThreshold {
					sharp++
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(sharp) / float64(total)
}

// gradientSmoothness returns the fraction of horizontal pixel triples whose
// successive differences are similar (0 noisy, 1 smooth).
func gradientSmoothness(img *core.RawImage) float64 {
	var smooth, total int
	for y := 2; y < img.Height-2; y++ {
		for x := 2; x < img.Width-2; x++ {
			diff1 := pixelDiff(img, x, y, x+1, y)
			diff2 := pixelDiff(img, x+1, y, x+2, y)
			total++
			if math.Abs(diff1-diff2) < edgeThreshold {
				smooth++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(smooth) / float64(total)
}

// textLikelihood scores high-contrast 8x8 blocks; text regions show extreme
// local brightness ranges.
func textLikelihood(img *core.RawImage) float64 {
	var highContrast, total int
	for by := 0; by < img.Height; by += textBlockSize {
		for bx := 0; bx < img.Width; bx += textBlockSize {
			minB, maxB := 255, 0
			for dy := 0; dy < textBlockSize && by+dy < img.Height; dy++ {
				for dx := 0; dx < textBlockSize && bx+dx < img.Width; dx++ {
					r, g, b, _ := img.RGBAAt(bx+dx, by+dy)
					brightness := (int(r) + int(g) + int(b)) / 3
					if brightness < minB {
						minB = brightness
					}
					if brightness > maxB {
						maxB = brightness
					}
				}
			}
			total++
			if maxB-minB > textBlockContrast {
				highContrast++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(highContrast) / float64(total)
}

// noiseLevel measures mean deviation from the 4-connected neighbor average,
// normalised to [0, 1].
func noiseLevel(img *core.RawImage) float64 {
	var sum float64
	var count int
	for y := 1; y < img.Height-1; y++ {
		for x := 1; x < img.Width-1; x++ {
			cr, cg, cb, _ := img.RGBAAt(x, y)

			var ar, ag, ab float64
			for _, p := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				r, g, b, _ := img.RGBAAt(p[0], p[1])
				ar += float64(r)
				ag += float64(g)
				ab += float64(b)
			}
			ar /= 4
			ag /= 4
			ab /= 4

			sum += (math.Abs(float64(cr)-ar) + math.Abs(float64(cg)-ag) + math.Abs(float64(cb)-ab)) / 3
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) / 255
}

func classify(colors int, sharpness, smoothness, text float64) core.ContentType {
	switch {
	case colors < pixelArtMaxColors && sharpness > 0.7:
		return core.ContentPixelArt
	case text > 0.5 && sharpness > 0.6:
		return core.ContentText
	case text > 0.3 && text < 0.6:
		return core.ContentScreenshot
	case smoothness > 0.6 && colors > photoMinColors:
		return core.ContentPhoto
	case colors > pixelArtMaxColors && colors < artworkMaxColors:
		return core.ContentArtwork
	}
	return core.ContentMixed
}

func pixelDiff(img *core.RawImage, x1, y1, x2, y2 int) float64 {
	r1, g1, b1, _ := img.RGBAAt(x1, y1)
	r2, g2, b2, _ := img.RGBAAt(x2, y2)
	return (math.Abs(float64(r1)-float64(r2)) +
		math.Abs(float64(g1)-float64(g2)) +
		math.Abs(float64(b1)-float64(b2))) / 3
}
