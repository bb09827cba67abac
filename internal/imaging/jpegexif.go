package imaging

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

var jpegExifHeader = []byte("Exif\x00\x00")

// InsertJPEGExif splices rawExif (TIFF header onward) into an encoded JPEG as
// an APP1 segment directly after SOI. Any EXIF APP1 already present is
// replaced rather than duplicated.
func InsertJPEGExif(jpegData, rawExif []byte) ([]byte, error) {
	payload := len(jpegExifHeader) + len(rawExif)
	if payload+2 > 0xffff {
		return nil, fmt.Errorf("exif payload too large for APP1 segment (%d bytes)", payload)
	}

	br := bufio.NewReader(bytes.NewReader(jpegData))
	var out bytes.Buffer
	bw := bufio.NewWriter(&out)

	soi := make([]byte, 2)
	if _, err := io.ReadFull(br, soi); err != nil {
		return nil, err
	}
	if soi[0] != 0xff || soi[1] != 0xd8 {
		return nil, fmt.Errorf("invalid JPEG SOI")
	}
	if _, err := bw.Write(soi); err != nil {
		return nil, err
	}

	// New APP1 goes first so readers that stop at the first marker find it.
	if _, err := bw.Write([]byte{0xff, 0xe1}); err != nil {
		return nil, err
	}
	lenBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBuf, uint16(payload+2))
	if _, err := bw.Write(lenBuf); err != nil {
		return nil, err
	}
	if _, err := bw.Write(jpegExifHeader); err != nil {
		return nil, err
	}
	if _, err := bw.Write(rawExif); err != nil {
		return nil, err
	}

	for {
		markerPrefix, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		for markerPrefix != 0xff {
			markerPrefix, err = br.ReadByte()
			if err != nil {
				return nil, err
			}
		}

		marker, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		for marker == 0xff {
			marker, err = br.ReadByte()
			if err != nil {
				return nil, err
			}
		}

		if marker == 0xd9 { // EOI
			if _, err := bw.Write([]byte{0xff, 0xd9}); err != nil {
				return nil, err
			}
			break
		}

		if marker == 0xda { // SOS: entropy-coded data follows, copy the rest
			if _, err := bw.Write([]byte{0xff, marker}); err != nil {
				return nil, err
			}
			if _, err := io.Copy(bw, br); err != nil {
				return nil, err
			}
			break
		}

		if marker == 0x01 || (marker >= 0xd0 && marker <= 0xd7) {
			if _, err := bw.Write([]byte{0xff, marker}); err != nil {
				return nil, err
			}
			continue
		}

		segLenBuf := make([]byte, 2)
		if _, err := io.ReadFull(br, segLenBuf); err != nil {
			return nil, err
		}
		segLen := int(binary.BigEndian.Uint16(segLenBuf))
		if segLen < 2 {
			return nil, fmt.Errorf("invalid JPEG segment length")
		}
		segPayload := make([]byte, segLen-2)
		if _, err := io.ReadFull(br, segPayload); err != nil {
			return nil, err
		}

		// Drop a pre-existing EXIF APP1, keep everything else.
		if marker == 0xe1 && bytes.HasPrefix(segPayload, jpegExifHeader) {
			continue
		}

		if _, err := bw.Write([]byte{0xff, marker}); err != nil {
			return nil, err
		}
		if _, err := bw.Write(segLenBuf); err != nil {
			return nil, err
		}
		if _, err := bw.Write(segPayload); err != nil {
			return nil, err
		}
	}

	if err := bw.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
