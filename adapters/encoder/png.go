// Package encoder provides core.Encoder implementations.  WebP has no
// pure-Go encoder; it is served by the optional vips backend instead.
package encoder

import (
	"bytes"
	"context"
	"image/png"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// PNG encodes images to PNG format.
type PNG struct{}

func NewPNG() *PNG { return &PNG{} }

func (p *PNG) CanEncode(format core.Format) bool { return format == core.FormatPNG }

func (p *PNG) Encode(ctx context.Context, img *core.RawImage, _ core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "png.encode", err)
	}
	if img.Empty() {
		return nil, apperrors.New(apperrors.CategoryIO, "png.encode", apperrors.ErrEmptyInput)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.NRGBA()); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "png.encode", err)
	}
	return buf.Bytes(), nil
}
