package decoder

import (
	"context"
	"io"

	"golang.org/x/image/bmp"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// BMP decodes Windows bitmap images via golang.org/x/image.
type BMP struct{}

func NewBMP() *BMP { return &BMP{} }

func (b *BMP) CanDecode(format core.Format) bool { return format == core.FormatBMP }

func (b *BMP) Decode(ctx context.Context, r io.Reader) (*core.RawImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "bmp.decode", err)
	}
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "bmp.decode", err)
	}
	return toRaw(img, core.FormatBMP), nil
}
