package upscale

import (
	"math"

	"github.com/Skryldev/image-upscaler/core"
	"github.com/Skryldev/image-upscaler/utils"
)

// EdgeDirected interpolates along local edge direction instead of across it,
// preserving sharp edges while smoothing flat regions.
type EdgeDirected struct{}

func (EdgeDirected) Name() string    { return "edge-directed" }
func (EdgeDirected) Tier() core.Tier { return core.TierMedium }

// flatGradientLimit is the gradient magnitude below which the sampler falls
// back to bilinear.
const flatGradientLimit = 10.0

func gradient(img *core.RawImage, x, y int) (magnitude, angle float64) {
	lr, lg, lb, _ := img.Clamped(x-1, y)
	rr, rg, rb, _ := img.Clamped(x+1, y)
	tr, tg, tb, _ := img.Clamped(x, y-1)
	br, bg, bb, _ := img.Clamped(x, y+1)

	dx := (float64(rr) - float64(lr)) + (float64(rg) - float64(lg)) + (float64(rb) - float64(lb))
	dy := (float64(br) - float64(tr)) + (float64(bg) - float64(tg)) + (float64(bb) - float64(tb))

	adx := math.Abs(float64(rr)-float64(lr)) + math.Abs(float64(rg)-float64(lg)) + math.Abs(float64(rb)-float64(lb))
	ady := math.Abs(float64(br)-float64(tr)) + math.Abs(float64(bg)-float64(tg)) + math.Abs(float64(bb)-float64(tb))

	return math.Sqrt(adx*adx + ady*ady), math.Atan2(dy, dx)
}

func (EdgeDirected) Upscale(img *core.RawImage, scale float64) *core.RawImage {
	w, h := utils.OutputDimensions(img.Width, img.Height, scale)
	out := core.NewRawImage(w, h)
	out.Format = img.Format

	for y := 0; y < h; y++ {
		sy := srcCoord(y, scale)
		for x := 0; x < w; x++ {
			sx := srcCoord(x, scale)

			x0 := int(math.Floor(sx))
			y0 := int(math.Floor(sy))
			magnitude, angle := gradient(img, x0, y0)

			if magnitude < flatGradientLimit {
				r, g, b, a := sampleBilinear(img, sx, sy)
				out.SetRGBA(x, y, r, g, b, a)
				continue
			}

			cos, sin := math.Cos(angle), math.Sin(angle)
			var ac accum
			for i := -1; i <= 1; i++ {
				offset := float64(i) * 0.5
				px := int(math.Round(sx + cos*offset))
				py := int(math.Round(sy + sin*offset))
				weight := 1 - math.Abs(float64(i))*0.3
				ac.add(img, px, py, weight)
			}
			r, g, b, a := ac.pixel()
			out.SetRGBA(x, y, r, g, b, a)
		}
	}
	return out
}

// ScaleByRules is a simplified xBR-style pattern-matching upscaler:
// repeated 2x passes with edge-aware blending, then a nearest resize to the
// exact target size.  Excellent for pixel art and sharp-edged content.
type ScaleByRules struct{}

func (ScaleByRules) Name() string    { return "xbr" }
func (ScaleByRules) Tier() core.Tier { return core.TierMedium }

const xbrEdgeThreshold = 30.0

func colorDiff(img *core.RawImage, x1, y1, x2, y2 int) float64 {
	r1, g1, b1, _ := img.Clamped(x1, y1)
	r2, g2, b2, _ := img.Clamped(x2, y2)
	return math.Abs(float64(r1)-float64(r2)) +
		math.Abs(float64(g1)-float64(g2)) +
		math.Abs(float64(b1)-float64(b2))
}

func upscale2x(img *core.RawImage) *core.RawImage {
	out := core.NewRawImage(img.Width*2, img.Height*2)
	out.Format = img.Format

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			cr, cg, cb, ca := img.RGBAAt(x, y)

			// Each output sample defaults to the center pixel.
			type px struct{ r, g, b, a uint8 }
			block := [4]px{{cr, cg, cb, ca}, {cr, cg, cb, ca}, {cr, cg, cb, ca}, {cr, cg, cb, ca}}

			blend := func(i int, nx, ny int, t float64) {
				nr, ng, nb, na := img.Clamped(nx, ny)
				block[i] = px{
					lerp(block[i].r, nr, t),
					lerp(block[i].g, ng, t),
					lerp(block[i].b, nb, t),
					lerp(block[i].a, na, t),
				}
			}

			if colorDiff(img, x-1, y, x+1, y) > xbrEdgeThreshold {
				blend(0, x-1, y, 0.5)
				blend(1, x+1, y, 0.5)
			}
			if colorDiff(img, x, y-1, x, y+1) > xbrEdgeThreshold {
				blend(0, x, y-1, 0.5)
				blend(2, x, y+1, 0.5)
			}
			if colorDiff(img, x-1, y-1, x+1, y+1) > xbrEdgeThreshold {
				blend(0, x-1, y-1, 0.3)
			}
			if colorDiff(img, x+1, y-1, x-1, y+1) > xbrEdgeThreshold {
				blend(1, x+1, y-1, 0.3)
			}

			ox, oy := x*2, y*2
			out.SetRGBA(ox, oy, block[0].r, block[0].g, block[0].b, block[0].a)
			out.SetRGBA(ox+1, oy, block[1].r, block[1].g, block[1].b, block[1].a)
			out.SetRGBA(ox, oy+1, block[2].r, block[2].g, block[2].b, block[2].a)
			out.SetRGBA(ox+1, oy+1, block[3].r, block[3].g, block[3].b, block[3].a)
		}
	}
	return out
}

func (ScaleByRules) Upscale(img *core.RawImage, scale float64) *core.RawImage {
	targetW, targetH := utils.OutputDimensions(img.Width, img.Height, scale)

	current := img
	for current.Width < targetW || current.Height < targetH {
		current = upscale2x(current)
	}
	if current.Width == targetW && current.Height == targetH {
		return current
	}

	// Nearest resize to the exact target size.
	out := core.NewRawImage(targetW, targetH)
	out.Format = img.Format
	for y := 0; y < targetH; y++ {
		sy := y * current.Height / targetH
		for x := 0; x < targetW; x++ {
			sx := x * current.Width / targetW
			r, g, b, a := current.RGBAAt(sx, sy)
			out.SetRGBA(x, y, r, g, b, a)
		}
	}
	return out
}
