package image

import "bytes"

// sniffLen is the minimum prefix needed to identify every supported
// container, dictated by the WebP sub-type marker at offset 8.
const sniffLen = 12

var signatures = []struct {
	format Format
	prefix []byte
}{
	{FormatPNG, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{FormatJPEG, []byte{0xFF, 0xD8, 0xFF}},
	{FormatGIF, []byte("GIF8")},
	{FormatBMP, []byte("BM")},
}

var (
	riffPrefix = []byte("RIFF")
	webpMarker = []byte("WEBP")
)

// Sniff identifies a supported image container from the buffer's magic
// bytes. Buffers shorter than 12 bytes are always unknown. The signatures
// are mutually exclusive, so check order does not matter.
func Sniff(data []byte) Format {
	if len(data) < sniffLen {
		return FormatUnknown
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.prefix) {
			return sig.format
		}
	}

	// WebP needs both the RIFF container signature at offset 0 and the
	// WEBP sub-type marker at offset 8.
	if bytes.HasPrefix(data, riffPrefix) && bytes.Equal(data[8:12], webpMarker) {
		return FormatWebP
	}

	return FormatUnknown
}
