package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
	}{
		{".jpg", FormatJPEG},
		{".JPEG", FormatJPEG},
		{"png", FormatPNG},
		{".webp", FormatWebP},
		{".BMP", FormatBMP},
		{".gif", FormatUnknown},
		{"", FormatUnknown},
	}
	for _, tt := range tests {
		if got := FormatFromExtension(tt.ext); got != tt.want {
			t.Errorf("FormatFromExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: byte(x * 60), G: byte(y * 60), B: 0x80, A: 0xff})
		}
	}

	for _, format := range []Format{FormatJPEG, FormatPNG, FormatBMP} {
		data, err := Encode(img, format, EncodeOptions{Quality: 80})
		if err != nil {
			t.Fatalf("encode %s: %v", format, err)
		}
		decoded, name, err := Decode(data)
		if err != nil {
			t.Fatalf("decode %s: %v", format, err)
		}
		if name != format.String() {
			t.Fatalf("decoded as %q, want %q", name, format)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Fatalf("%s: bounds changed: %v", format, decoded.Bounds())
		}
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if _, err := Encode(img, FormatUnknown, EncodeOptions{Quality: 80}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestHasAlpha(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xff
	}
	if HasAlpha(opaque) {
		t.Fatal("fully opaque image reported as having alpha")
	}

	translucent := image.NewRGBA(image.Rect(0, 0, 2, 2))
	translucent.Set(0, 0, color.RGBA{R: 0xff, A: 0x80})
	if !HasAlpha(translucent) {
		t.Fatal("translucent image not detected")
	}
}

func TestInputExtensionsIncludeExtendedFormats(t *testing.T) {
	exts := make(map[string]bool)
	for _, ext := range InputExtensions() {
		exts[ext] = true
	}
	for _, want := range []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".heic", ".avif"} {
		if !exts[want] {
			t.Fatalf("missing input extension %s", want)
		}
	}
}
