package pipeline

import (
	"github.com/Skryldev/image-upscaler/core"
)

// boxDenoise replaces each pixel with the 3x3 neighbourhood mean, edge
// pixels clamped.  Alpha is averaged like the colour channels.
func boxDenoise(img *core.RawImage) *core.RawImage {
	out := core.NewRawImage(img.Width, img.Height)
	out.Format = img.Format
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			var r, g, b, a int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					cr, cg, cb, ca := img.Clamped(x+dx, y+dy)
					r += int(cr)
					g += int(cg)
					b += int(cb)
					a += int(ca)
				}
			}
			out.SetRGBA(x, y, uint8(r/9), uint8(g/9), uint8(b/9), uint8(a/9))
		}
	}
	return out
}

// unsharp applies the 3x3 laplacian sharpening kernel (centre 5, cross -1),
// clamping each channel.  Alpha passes through unchanged.
func unsharp(img *core.RawImage) *core.RawImage {
	out := core.NewRawImage(img.Width, img.Height)
	out.Format = img.Format
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			cr, cg, cb, ca := img.Clamped(x, y)
			ur, ug, ub, _ := img.Clamped(x, y-1)
			dr, dg, db, _ := img.Clamped(x, y+1)
			lr, lg, lb, _ := img.Clamped(x-1, y)
			rr, rg, rb, _ := img.Clamped(x+1, y)

			out.SetRGBA(x, y,
				clamp8(5*int(cr)-int(ur)-int(dr)-int(lr)-int(rr)),
				clamp8(5*int(cg)-int(ug)-int(dg)-int(lg)-int(rg)),
				clamp8(5*int(cb)-int(ub)-int(db)-int(lb)-int(rb)),
				ca)
		}
	}
	return out
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
