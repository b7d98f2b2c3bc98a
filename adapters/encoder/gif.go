package encoder

import (
	"bytes"
	"context"
	"image/gif"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// GIF encodes images to GIF format with a per-image quantized palette.
type GIF struct{}

func NewGIF() *GIF { return &GIF{} }

func (g *GIF) CanEncode(format core.Format) bool { return format == core.FormatGIF }

func (g *GIF) Encode(ctx context.Context, img *core.RawImage, _ core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "gif.encode", err)
	}
	if img.Empty() {
		return nil, apperrors.New(apperrors.CategoryIO, "gif.encode", apperrors.ErrEmptyInput)
	}
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img.NRGBA(), &gif.Options{NumColors: 256}); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "gif.encode", err)
	}
	return buf.Bytes(), nil
}
