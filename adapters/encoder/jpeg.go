package encoder

import (
	"bytes"
	"context"
	"image/jpeg"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// JPEG encodes images to JPEG format.
type JPEG struct {
	defaultQuality int
}

func NewJPEG(defaultQuality int) *JPEG {
	if defaultQuality <= 0 {
		defaultQuality = 85
	}
	return &JPEG{defaultQuality: defaultQuality}
}

func (j *JPEG) CanEncode(format core.Format) bool { return format == core.FormatJPEG }

func (j *JPEG) Encode(ctx context.Context, img *core.RawImage, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "jpeg.encode", err)
	}
	if img.Empty() {
		return nil, apperrors.New(apperrors.CategoryIO, "jpeg.encode", apperrors.ErrEmptyInput)
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = j.defaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.NRGBA(), &jpeg.Options{Quality: quality}); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "jpeg.encode", err)
	}
	return buf.Bytes(), nil
}
