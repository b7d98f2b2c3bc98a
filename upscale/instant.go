package upscale

import (
	"math"

	"github.com/Skryldev/image-upscaler/core"
	"github.com/Skryldev/image-upscaler/utils"
)

// NearestNeighbor replicates pixels without interpolation.  Pixel-perfect for
// pixel art and text.
type NearestNeighbor struct{}

func (NearestNeighbor) Name() string    { return "nearest" }
func (NearestNeighbor) Tier() core.Tier { return core.TierInstant }

func (NearestNeighbor) Upscale(img *core.RawImage, scale float64) *core.RawImage {
	w, h := utils.OutputDimensions(img.Width, img.Height, scale)
	out := core.NewRawImage(w, h)
	out.Format = img.Format

	for y := 0; y < h; y++ {
		sy := int(math.Floor(float64(y) / scale))
		if sy > img.Height-1 {
			sy = img.Height - 1
		}
		for x := 0; x < w; x++ {
			sx := int(math.Floor(float64(x) / scale))
			if sx > img.Width-1 {
				sx = img.Width - 1
			}
			r, g, b, a := img.RGBAAt(sx, sy)
			out.SetRGBA(x, y, r, g, b, a)
		}
	}
	return out
}

// Bilinear interpolates between the four nearest pixels.  Smooth and still
// very fast.
type Bilinear struct{}

func (Bilinear) Name() string    { return "bilinear" }
func (Bilinear) Tier() core.Tier { return core.TierInstant }

func (Bilinear) Upscale(img *core.RawImage, scale float64) *core.RawImage {
	w, h := utils.OutputDimensions(img.Width, img.Height, scale)
	out := core.NewRawImage(w, h)
	out.Format = img.Format

	for y := 0; y < h; y++ {
		sy := srcCoord(y, scale)
		for x := 0; x < w; x++ {
			sx := srcCoord(x, scale)
			r, g, b, a := sampleBilinear(img, sx, sy)
			out.SetRGBA(x, y, r, g, b, a)
		}
	}
	return out
}

func sampleBilinear(img *core.RawImage, x, y float64) (uint8, uint8, uint8, uint8) {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	tr, tg, tb, ta := lerpPixel(img, x0, y0, x0+1, y0, fx)
	br, bg, bb, ba := lerpPixel(img, x0, y0+1, x0+1, y0+1, fx)
	return lerp(tr, br, fy), lerp(tg, bg, fy), lerp(tb, bb, fy), lerp(ta, ba, fy)
}
