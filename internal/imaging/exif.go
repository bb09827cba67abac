package imaging

import (
	"errors"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// ExtractExif pulls the raw EXIF blob (TIFF header onward) out of an encoded
// image. Returns nil with no error when the image simply carries no EXIF.
func ExtractExif(data []byte) ([]byte, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if isNoExif(err) {
			return nil, nil
		}
		return nil, err
	}
	return rawExif, nil
}

// go-exif wraps its sentinel through go-errors, so match on the message too.
func isNoExif(err error) bool {
	if errors.Is(err, exif.ErrNoExif) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
