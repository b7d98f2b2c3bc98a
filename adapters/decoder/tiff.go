package decoder

import (
	"context"
	"io"

	"golang.org/x/image/tiff"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// TIFF decodes TIFF images via golang.org/x/image.
type TIFF struct{}

func NewTIFF() *TIFF { return &TIFF{} }

func (t *TIFF) CanDecode(format core.Format) bool { return format == core.FormatTIFF }

func (t *TIFF) Decode(ctx context.Context, r io.Reader) (*core.RawImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "tiff.decode", err)
	}
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "tiff.decode", err)
	}
	return toRaw(img, core.FormatTIFF), nil
}
