package imaging

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	vp8xFlagAlpha = 0x10
	vp8xFlagExif  = 0x08
)

// InsertWebPExif appends an EXIF chunk to an encoded WebP. Simple-format
// files (bare VP8/VP8L) are upgraded to the extended VP8X container first,
// since only VP8X files may carry metadata chunks. width/height are the
// canvas dimensions; hasAlpha sets the VP8X alpha hint.
func InsertWebPExif(webpData, rawExif []byte, width, height int, hasAlpha bool) ([]byte, error) {
	if len(webpData) < 12 || !bytes.Equal(webpData[:4], []byte("RIFF")) || !bytes.Equal(webpData[8:12], []byte("WEBP")) {
		return nil, fmt.Errorf("not a WebP container")
	}
	if width < 1 || height < 1 || width > 1<<24 || height > 1<<24 {
		return nil, fmt.Errorf("canvas dimensions out of range: %dx%d", width, height)
	}

	chunks := webpData[12:]

	var out bytes.Buffer
	out.Write([]byte("RIFF"))
	out.Write([]byte{0, 0, 0, 0}) // patched below
	out.Write([]byte("WEBP"))

	if len(chunks) >= 8 && bytes.Equal(chunks[:4], []byte("VP8X")) {
		// Already extended: copy chunks, flip the EXIF flag in place.
		start := out.Len()
		out.Write(chunks)
		out.Bytes()[start+8] |= vp8xFlagExif
	} else {
		flags := byte(vp8xFlagExif)
		if hasAlpha {
			flags |= vp8xFlagAlpha
		}
		vp8x := make([]byte, 10)
		vp8x[0] = flags
		putUint24(vp8x[4:7], uint32(width-1))
		putUint24(vp8x[7:10], uint32(height-1))
		writeChunk(&out, "VP8X", vp8x)
		out.Write(chunks)
	}

	writeChunk(&out, "EXIF", rawExif)

	data := out.Bytes()
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(data)-8))
	return data, nil
}

func writeChunk(buf *bytes.Buffer, fourCC string, payload []byte) {
	buf.WriteString(fourCC)
	size := make([]byte, 4)
	binary.LittleEndian.PutUint32(size, uint32(len(payload)))
	buf.Write(size)
	buf.Write(payload)
	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
}

func putUint24(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
}
