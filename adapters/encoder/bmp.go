package encoder

import (
	"bytes"
	"context"

	"golang.org/x/image/bmp"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// BMP encodes images to Windows bitmap format.
type BMP struct{}

func NewBMP() *BMP { return &BMP{} }

func (b *BMP) CanEncode(format core.Format) bool { return format == core.FormatBMP }

func (b *BMP) Encode(ctx context.Context, img *core.RawImage, _ core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "bmp.encode", err)
	}
	if img.Empty() {
		return nil, apperrors.New(apperrors.CategoryIO, "bmp.encode", apperrors.ErrEmptyInput)
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img.NRGBA()); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "bmp.encode", err)
	}
	return buf.Bytes(), nil
}
