package upscale

import (
	"math"

	"github.com/Skryldev/image-upscaler/core"
)

// IterativeBackProjection refines a bilinear estimate by repeatedly
// simulating the downscale, measuring the reconstruction error against the
// original, and projecting that error back into the high-resolution image.
type IterativeBackProjection struct {
	name         string
	iterations   int
	learningRate float64
}

// NewIBP returns the standard preset (10 iterations).
func NewIBP() *IterativeBackProjection {
	return &IterativeBackProjection{name: "ibp", iterations: 10, learningRate: 0.5}
}

// NewIBPFast returns the fast preset (5 iterations).
func NewIBPFast() *IterativeBackProjection {
	return &IterativeBackProjection{name: "ibp-fast", iterations: 5, learningRate: 0.5}
}

// NewIBPQuality returns the quality preset (20 iterations, gentler rate).
func NewIBPQuality() *IterativeBackProjection {
	return &IterativeBackProjection{name: "ibp-quality", iterations: 20, learningRate: 0.3}
}

func (p *IterativeBackProjection) Name() string    { return p.name }
func (p *IterativeBackProjection) Tier() core.Tier { return core.TierSlow }

func (p *IterativeBackProjection) Upscale(img *core.RawImage, scale float64) *core.RawImage {
	result := Bilinear{}.Upscale(img, scale)

	for iter := 0; iter < p.iterations; iter++ {
		simulated := downsampleAverage(result, img.Width, img.Height)
		p.backProject(result, img, simulated, scale)
	}
	return result
}

// downsampleAverage shrinks by box-averaging source regions.
func downsampleAverage(img *core.RawImage, targetW, targetH int) *core.RawImage {
	out := core.NewRawImage(targetW, targetH)
	out.Format = img.Format
	scaleX := float64(img.Width) / float64(targetW)
	scaleY := float64(img.Height) / float64(targetH)

	for y := 0; y < targetH; y++ {
		y0 := int(float64(y) * scaleY)
		y1 := int(math.Min(float64(y+1)*scaleY, float64(img.Height)))
		for x := 0; x < targetW; x++ {
			x0 := int(float64(x) * scaleX)
			x1 := int(math.Min(float64(x+1)*scaleX, float64(img.Width)))

			var ac accum
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					ac.add(img, sx, sy, 1)
				}
			}
			r, g, b, a := ac.pixel()
			out.SetRGBA(x, y, r, g, b, a)
		}
	}
	return out
}

// backProject adds the per-pixel reconstruction error (original minus
// simulated) into the high-resolution estimate.
func (p *IterativeBackProjection) backProject(highRes, original, simulated *core.RawImage, scale float64) {
	for y := 0; y < highRes.Height; y++ {
		sy := int(float64(y) / scale)
		if sy >= original.Height {
			sy = original.Height - 1
		}
		for x := 0; x < highRes.Width; x++ {
			sx := int(float64(x) / scale)
			if sx >= original.Width {
				sx = original.Width - 1
			}

			or, og, ob, _ := original.RGBAAt(sx, sy)
			sr, sg, sb, _ := simulated.RGBAAt(sx, sy)
			cr, cg, cb, ca := highRes.RGBAAt(x, y)

			highRes.SetRGBA(x, y,
				clampChannel(float64(cr)+(float64(or)-float64(sr))*p.learningRate),
				clampChannel(float64(cg)+(float64(og)-float64(sg))*p.learningRate),
				clampChannel(float64(cb)+(float64(ob)-float64(sb))*p.learningRate),
				ca)
		}
	}
}

// TotalVariation upscales with bicubic and then applies edge-preserving
// smoothing that minimizes the sum of gradient magnitudes.
type TotalVariation struct {
	iterations int
	lambda     float64
}

// NewTotalVariation returns the default preset (15 iterations).
func NewTotalVariation() *TotalVariation {
	return &TotalVariation{iterations: 15, lambda: 0.1}
}

func (t *TotalVariation) Name() string    { return "tv" }
func (t *TotalVariation) Tier() core.Tier { return core.TierSlow }

func (t *TotalVariation) Upscale(img *core.RawImage, scale float64) *core.RawImage {
	result := Bicubic{}.Upscale(img, scale)
	for i := 0; i < t.iterations; i++ {
		tvIteration(result, t.lambda)
	}
	return result
}

func tvIteration(img *core.RawImage, lambda float64) {
	next := make([]uint8, len(img.Pix))
	copy(next, img.Pix)

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			cr, cg, cb, ca := img.RGBAAt(x, y)

			rr, rg, rb, _ := img.Clamped(x+1, y)
			br, bg, bb, _ := img.Clamped(x, y+1)
			gx := math.Abs(float64(rr)-float64(cr)) + math.Abs(float64(rg)-float64(cg)) + math.Abs(float64(rb)-float64(cb))
			gy := math.Abs(float64(br)-float64(cr)) + math.Abs(float64(bg)-float64(cg)) + math.Abs(float64(bb)-float64(cb))
			totalTV := math.Sqrt(gx*gx) + math.Sqrt(gy*gy) + 1e-6
			weight := lambda / totalTV

			var nr, ng, nb float64 = float64(cr), float64(cg), float64(cb)
			for _, d := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				pr, pg, pb, _ := img.Clamped(d[0], d[1])
				nr += weight * (float64(pr) - float64(cr))
				ng += weight * (float64(pg) - float64(cg))
				nb += weight * (float64(pb) - float64(cb))
			}

			i := (y*img.Width + x) * 4
			next[i] = clampChannel(nr)
			next[i+1] = clampChannel(ng)
			next[i+2] = clampChannel(nb)
			next[i+3] = ca
		}
	}
	copy(img.Pix, next)
}
