// Package decoder provides core.Decoder implementations for all supported
// container formats.  Each decoder normalises pixels into the NRGBA layout
// RawImage expects, so every later stage sees one representation.
package decoder

import (
	"image"
	"image/draw"

	"github.com/Skryldev/image-upscaler/core"
)

// toRaw normalises any decoded image.Image into a RawImage.
func toRaw(img image.Image, format core.Format) *core.RawImage {
	if n, ok := img.(*image.NRGBA); ok {
		return core.FromNRGBA(n, format)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return core.FromNRGBA(dst, format)
}
