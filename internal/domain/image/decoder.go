package image

// Frame is one decoded image owned by the decoder that produced it. Every
// frame must be released exactly once; Close errors if called twice so leaks
// and double-releases surface in tests.
type Frame interface {
	Bounds() (width, height int)
	Close() error
}

// Decoder is the port onto the external decode library. Implementations
// must not share frame state between calls; each call owns its own frames.
type Decoder interface {
	// Decode loads bytes into a new frame.
	Decode(data []byte) (Frame, error)

	// Resize scales src into a new frame. Implementations may return src
	// itself when no scaling is needed; callers handle that identity.
	Resize(src Frame, width, height int) (Frame, error)

	// RGBA extracts the frame's pixels as an RGBA buffer the caller owns.
	RGBA(f Frame) ([]byte, error)
}
