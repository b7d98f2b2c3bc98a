package decoder

import (
	"context"
	"image/jpeg"
	"io"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// JPEG decodes JPEG images using the standard library.
type JPEG struct{}

func NewJPEG() *JPEG { return &JPEG{} }

func (j *JPEG) CanDecode(format core.Format) bool { return format == core.FormatJPEG }

func (j *JPEG) Decode(ctx context.Context, r io.Reader) (*core.RawImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "jpeg.decode", err)
	}
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "jpeg.decode", err)
	}
	return toRaw(img, core.FormatJPEG), nil
}
