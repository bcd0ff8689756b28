package image

import (
	"fmt"

	"dyelens/internal/platform/config"
	"dyelens/internal/platform/errors"
)

// Limits bounds a payload before it is handed to the decoder, guarding
// against decompression-bomb style amplification.
type Limits struct {
	MaxFileSize int64
	MaxWidth    int
	MaxHeight   int
	MaxPixels   int64
}

func LimitsFromConfig(cfg config.LimitsConfig) Limits {
	return Limits{
		MaxFileSize: cfg.MaxFileSize,
		MaxWidth:    cfg.MaxWidth,
		MaxHeight:   cfg.MaxHeight,
		MaxPixels:   cfg.MaxPixels,
	}
}

// CheckSize rejects empty payloads and payloads over the byte limit.
func (l Limits) CheckSize(size int64) error {
	const op = "validate_size"

	if size <= 0 {
		return errors.New(errors.KindDecodeFailed, op, "image is empty")
	}
	if size > l.MaxFileSize {
		return errors.Wrap(errors.KindTooLarge, op, "image file too large",
			&errors.LimitError{
				Limit:  errors.LimitBytes,
				Detail: sizeDetail(size, l.MaxFileSize),
			})
	}
	return nil
}

// CheckDimensions rejects non-positive axes, axes over their individual
// bound, and total pixel counts over the pixel budget. The pixel check is
// independent of the per-axis checks so aspect-ratio tricks cannot slip a
// huge allocation past them.
func (l Limits) CheckDimensions(width, height int) error {
	const op = "validate_dimensions"

	if width <= 0 || height <= 0 {
		return errors.New(errors.KindDecodeFailed, op,
			fmt.Sprintf("invalid image dimensions %dx%d", width, height))
	}
	if width > l.MaxWidth || height > l.MaxHeight {
		return errors.Wrap(errors.KindTooLarge, op, "image dimensions too large",
			&errors.LimitError{
				Limit: errors.LimitDimensions,
				Detail: fmt.Sprintf("image is %dx%d (maximum %dx%d)",
					width, height, l.MaxWidth, l.MaxHeight),
			})
	}
	if pixels := int64(width) * int64(height); pixels > l.MaxPixels {
		return errors.Wrap(errors.KindTooLarge, op, "image pixel count too large",
			&errors.LimitError{
				Limit:  errors.LimitPixelCount,
				Detail: fmt.Sprintf("image has %d pixels (maximum %d)", pixels, l.MaxPixels),
			})
	}
	return nil
}
