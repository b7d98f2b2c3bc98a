package decoder

import (
	"context"
	"image/gif"
	"io"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// GIF decodes the first frame of a GIF using the standard library.
type GIF struct{}

func NewGIF() *GIF { return &GIF{} }

func (g *GIF) CanDecode(format core.Format) bool { return format == core.FormatGIF }

func (g *GIF) Decode(ctx context.Context, r io.Reader) (*core.RawImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "gif.decode", err)
	}
	img, err := gif.Decode(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "gif.decode", err)
	}
	return toRaw(img, core.FormatGIF), nil
}
