// Package imaging wraps the image codecs used by the transforms: decoding via
// the registered stdlib/x-image/gen2brain decoders, encoding with per-format
// quality handling, and EXIF carry-over for JPEG and WebP output.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
)

// Format is an output image format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
	FormatWebP
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	case FormatBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

// Extension returns the canonical file extension, with leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatWebP:
		return ".webp"
	case FormatBMP:
		return ".bmp"
	default:
		return ""
	}
}

// FormatFromExtension maps a file extension (with or without dot,
// case-insensitive) to an output format.
func FormatFromExtension(ext string) Format {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "webp":
		return FormatWebP
	case "bmp":
		return FormatBMP
	default:
		return FormatUnknown
	}
}

// EncodeOptions carries the codec knobs. Quality applies to JPEG and lossy
// WebP; Lossless makes the WebP encoder ignore Quality.
type EncodeOptions struct {
	Quality  int
	Lossless bool
}

// Decode decodes an in-memory image using every registered decoder
// (JPEG/PNG/GIF from the stdlib, WebP/BMP from x/image, plus HEIC/AVIF when
// compiled in).
func Decode(data []byte) (image.Image, string, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return img, name, nil
}

// Encode renders img into the given output format.
func Encode(img image.Image, format Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatPNG:
		// PNG has no quality knob; best compression stands in for the
		// original's optimize flag.
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case FormatWebP:
		opt := &webp.Options{Lossless: opts.Lossless, Quality: float32(opts.Quality)}
		if err := webp.Encode(&buf, img, opt); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode bmp: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	return buf.Bytes(), nil
}

// HasAlpha reports whether img carries any non-opaque pixel.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}
