package core

import (
	"image"
)

// RawImage is the decoded pixel buffer passed between events.  Pix holds
// 8-bit NRGBA samples, 4 bytes per pixel in row-major order, the same layout
// as image.NRGBA so codec interop never copies pixels.
type RawImage struct {
	Width  int
	Height int
	Format Format
	Pix    []uint8
}

// NewRawImage allocates a zeroed (fully transparent black) buffer.
func NewRawImage(width, height int) *RawImage {
	return &RawImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromNRGBA wraps a decoded image without copying when the source has a
// compact stride, falling back to a copy otherwise.
func FromNRGBA(img *image.NRGBA, format Format) *RawImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == w*4 && b.Min == (image.Point{}) {
		return &RawImage{Width: w, Height: h, Format: format, Pix: img.Pix}
	}
	out := NewRawImage(w, h)
	out.Format = format
	for y := 0; y < h; y++ {
		src := img.Pix[(y+b.Min.Y-img.Rect.Min.Y)*img.Stride+(b.Min.X-img.Rect.Min.X)*4:]
		copy(out.Pix[y*w*4:(y+1)*w*4], src[:w*4])
	}
	return out
}

// NRGBA returns an image.NRGBA view sharing the pixel buffer.
func (r *RawImage) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Clone returns a deep copy of the image.
func (r *RawImage) Clone() *RawImage {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &RawImage{Width: r.Width, Height: r.Height, Format: r.Format, Pix: pix}
}

// RGBAAt returns the sample at (x, y).  Callers must stay in bounds.
func (r *RawImage) RGBAAt(x, y int) (uint8, uint8, uint8, uint8) {
	i := (y*r.Width + x) * 4
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]
}

// SetRGBA writes the sample at (x, y).  Out-of-bounds writes are ignored.
func (r *RawImage) SetRGBA(x, y int, cr, cg, cb, ca uint8) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return
	}
	i := (y*r.Width + x) * 4
	r.Pix[i] = cr
	r.Pix[i+1] = cg
	r.Pix[i+2] = cb
	r.Pix[i+3] = ca
}

// Clamped returns the sample at (x, y) with coordinates clamped to the edge,
// the sampling rule every interpolation kernel relies on.
func (r *RawImage) Clamped(x, y int) (uint8, uint8, uint8, uint8) {
	if x < 0 {
		x = 0
	} else if x >= r.Width {
		x = r.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.Height {
		y = r.Height - 1
	}
	return r.RGBAAt(x, y)
}

// Empty reports whether the image has no pixel data.
func (r *RawImage) Empty() bool {
	return r == nil || r.Width <= 0 || r.Height <= 0 || len(r.Pix) == 0
}
