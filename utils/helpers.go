package utils

import (
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Skryldev/image-upscaler/core"
)

// DetectFormat sniffs magic bytes and returns the image format.
func DetectFormat(data []byte) core.Format {
	if len(data) < 4 {
		return core.FormatUnknown
	}
	switch {
	// PNG: 89 50 4E 47
	case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return core.FormatPNG
	// JPEG: FF D8 FF
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return core.FormatJPEG
	// GIF: GIF8
	case data[0] == 'G' && data[1] == 'I' && data[2] == 'F' && data[3] == '8':
		return core.FormatGIF
	// BMP: BM
	case data[0] == 'B' && data[1] == 'M':
		return core.FormatBMP
	// TIFF: II*\0 or MM\0*
	case data[0] == 'I' && data[1] == 'I' && data[2] == 0x2A && data[3] == 0x00,
		data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == 0x2A:
		return core.FormatTIFF
	// WebP: RIFF....WEBP
	case len(data) >= 12 &&
		data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P':
		return core.FormatWebP
	}
	// Fallback to net/http sniffing.
	switch http.DetectContentType(data) {
	case "image/png":
		return core.FormatPNG
	case "image/jpeg":
		return core.FormatJPEG
	case "image/gif":
		return core.FormatGIF
	case "image/bmp":
		return core.FormatBMP
	case "image/webp":
		return core.FormatWebP
	}
	return core.FormatUnknown
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) core.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return core.FormatPNG
	case ".jpg", ".jpeg":
		return core.FormatJPEG
	case ".gif":
		return core.FormatGIF
	case ".bmp":
		return core.FormatBMP
	case ".tif", ".tiff":
		return core.FormatTIFF
	case ".webp":
		return core.FormatWebP
	}
	return core.FormatUnknown
}

// OutputDimensions computes the upscaled size for a scale factor.  The
// rounding rule is ceiling, applied independently per axis; every strategy
// must honor it so output size is a deterministic function of input size.
func OutputDimensions(width, height int, scale float64) (int, int) {
	return int(math.Ceil(float64(width) * scale)), int(math.Ceil(float64(height) * scale))
}

// StemWithSuffix inserts a suffix before the extension:
// out.png + "_pipeline" -> out_pipeline.png.
func StemWithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
