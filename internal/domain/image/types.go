// Package image implements the untrusted-image ingestion pipeline: URL
// guarding, bounded fetching, format sniffing, size/dimension validation,
// and memory-disciplined decode/resize into a plain RGBA buffer.
package image

// ValidatedURL is a canonical URL that has passed the guard. Only the guard
// constructs values of this type.
type ValidatedURL struct {
	URL string
}

// Fetched is a downloaded payload, owned by the caller until consumed by the
// format and dimension checks.
type Fetched struct {
	Bytes          []byte
	DeclaredLength int64
}

// Format identifies a supported image container, derived from magic bytes.
type Format string

const (
	FormatUnknown Format = ""
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpeg"
	FormatGIF     Format = "gif"
	FormatWebP    Format = "webp"
	FormatBMP     Format = "bmp"
)

// Processed is the adapter's output: a self-owned RGBA buffer with no
// decoder lifetime attached, safe to retain beyond the processing call.
type Processed struct {
	Pixels []byte // RGBA, 4 bytes per pixel, row-major
	Width  int
	Height int
}
