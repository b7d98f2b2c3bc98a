package encoder

import (
	"bytes"
	"context"

	"golang.org/x/image/tiff"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// TIFF encodes images to TIFF format.  Lossless output uses deflate
// compression, otherwise the image is written uncompressed.
type TIFF struct{}

func NewTIFF() *TIFF { return &TIFF{} }

func (t *TIFF) CanEncode(format core.Format) bool { return format == core.FormatTIFF }

func (t *TIFF) Encode(ctx context.Context, img *core.RawImage, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "tiff.encode", err)
	}
	if img.Empty() {
		return nil, apperrors.New(apperrors.CategoryIO, "tiff.encode", apperrors.ErrEmptyInput)
	}
	compression := tiff.Uncompressed
	if opts.Lossless {
		compression = tiff.Deflate
	}
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img.NRGBA(), &tiff.Options{Compression: compression}); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryIO, "tiff.encode", err)
	}
	return buf.Bytes(), nil
}
