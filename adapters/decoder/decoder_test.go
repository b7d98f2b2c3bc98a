package decoder

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 20), B: 77, A: 255})
		}
	}
	return img
}

func TestDecoders_AllFormats(t *testing.T) {
	src := testImage(10, 7)

	encode := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, &jpeg.Options{Quality: 95}) },
		"gif":  func(b *bytes.Buffer) error { return gif.Encode(b, src, &gif.Options{NumColors: 256}) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}
	decoders := map[string]core.Decoder{
		"png":  NewPNG(),
		"jpeg": NewJPEG(),
		"gif":  NewGIF(),
		"bmp":  NewBMP(),
		"tiff": NewTIFF(),
	}

	for name, enc := range encode {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := enc(&buf); err != nil {
				t.Fatalf("encode fixture: %v", err)
			}
			raw, err := decoders[name].Decode(context.Background(), &buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if raw.Width != 10 || raw.Height != 7 {
				t.Errorf("dims: got %dx%d", raw.Width, raw.Height)
			}
			if len(raw.Pix) != 10*7*4 {
				t.Errorf("pix len: %d", len(raw.Pix))
			}
		})
	}
}

func TestPNG_LosslessPixels(t *testing.T) {
	src := testImage(6, 6)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	raw, err := NewPNG().Decode(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := raw.RGBAAt(3, 2)
	if r != 60 || g != 40 || b != 77 || a != 255 {
		t.Errorf("pixel: got %d,%d,%d,%d", r, g, b, a)
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := NewPNG().Decode(context.Background(), bytes.NewReader([]byte("junk")))
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsCategory(err, apperrors.CategoryIO) {
		t.Errorf("category: %v", err)
	}
}

func TestCanDecode(t *testing.T) {
	if !NewPNG().CanDecode(core.FormatPNG) || NewPNG().CanDecode(core.FormatJPEG) {
		t.Error("PNG CanDecode wrong")
	}
	if !NewWebP().CanDecode(core.FormatWebP) {
		t.Error("WebP CanDecode wrong")
	}
}
