package image

import (
	"dyelens/internal/platform/errors"
	"dyelens/internal/platform/logging"
)

// DefaultMaxDimension bounds the larger axis before pixel extraction.
const DefaultMaxDimension = 256

// ProcessOptions tunes one processing call.
type ProcessOptions struct {
	MaxDimension int
}

// Processor wraps the decoder port with the resize policy and the release
// discipline: every frame allocated during a call is released exactly once
// on every exit path, and the original frame is only released separately
// when it is a distinct object from the resized one.
type Processor struct {
	decoder Decoder
	logger  *logging.Logger
}

func NewProcessor(decoder Decoder, logger *logging.Logger) *Processor {
	return &Processor{
		decoder: decoder,
		logger:  logger,
	}
}

// Process decodes, proportionally downsizes, and extracts RGBA pixels. An
// image already inside the bound is still run through Resize so cleanup is
// uniform across both paths.
func (p *Processor) Process(data []byte, opts ProcessOptions) (*Processed, error) {
	const op = "process"

	maxDim := opts.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	var original, resized Frame
	defer func() {
		if resized != nil {
			p.release(resized)
		}
		if original != nil && original != resized {
			p.release(original)
		}
	}()

	original, err := p.decoder.Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.KindDecodeFailed, op, "image decode failed", err)
	}

	width, height := original.Bounds()
	targetW, targetH := fitWithin(width, height, maxDim)

	resized, err = p.decoder.Resize(original, targetW, targetH)
	if err != nil {
		return nil, errors.Wrap(errors.KindDecodeFailed, op, "image resize failed", err)
	}

	pixels, err := p.decoder.RGBA(resized)
	if err != nil {
		return nil, errors.Wrap(errors.KindDecodeFailed, op, "pixel extraction failed", err)
	}
	if len(pixels) == 0 {
		return nil, errors.New(errors.KindNoColors, op, "image produced no pixels")
	}

	finalW, finalH := resized.Bounds()
	return &Processed{Pixels: pixels, Width: finalW, Height: finalH}, nil
}

// Dimensions decodes just far enough to read width and height, with the
// same guaranteed release, for cheap pre-validation before full processing.
func (p *Processor) Dimensions(data []byte) (int, int, error) {
	const op = "dimensions"

	frame, err := p.decoder.Decode(data)
	if err != nil {
		return 0, 0, errors.Wrap(errors.KindDecodeFailed, op, "image decode failed", err)
	}
	defer p.release(frame)

	width, height := frame.Bounds()
	return width, height, nil
}

// release swallows release failures: cleanup must never mask the primary
// result, and a handle that failed to release cannot be recovered anyway.
func (p *Processor) release(f Frame) {
	if err := f.Close(); err != nil {
		p.logger.Warn("frame release failed: %v", err)
	}
}

// fitWithin scales (width, height) so the larger axis is at most max,
// preserving aspect ratio with nearest-integer rounding. Dimensions already
// inside the bound are returned unchanged.
func fitWithin(width, height, max int) (int, int) {
	if width <= max && height <= max {
		return width, height
	}

	if width >= height {
		scale := float64(max) / float64(width)
		h := int(float64(height)*scale + 0.5)
		if h < 1 {
			h = 1
		}
		return max, h
	}

	scale := float64(max) / float64(height)
	w := int(float64(width)*scale + 0.5)
	if w < 1 {
		w = 1
	}
	return w, max
}
