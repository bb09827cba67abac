package imaging

// HEIC and AVIF input support. The decoders register themselves with
// image.Decode; their presence here is what makes the extensions below
// eligible at configuration time.
import (
	_ "github.com/gen2brain/avif"
	_ "github.com/gen2brain/heic"
	_ "golang.org/x/image/webp"
)

var inputExtensions = []string{
	".jpg", ".jpeg", ".png", ".webp", ".bmp",
	".heic", ".avif",
}

// InputExtensions lists the file extensions the compiled-in decoders accept.
// HEIC/AVIF appear exactly when their decoders are linked into the binary.
func InputExtensions() []string {
	out := make([]string, len(inputExtensions))
	copy(out, inputExtensions)
	return out
}
