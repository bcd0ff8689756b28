// Package palette reduces a processed pixel buffer to a handful of
// representative colors with dominance weights. The clustering itself is an
// external collaborator behind the Extractor port.
package palette

import (
	domaincolor "dyelens/internal/domain/color"
	"dyelens/internal/domain/image"
)

// MaxColors is the most representative colors one extraction may return.
const MaxColors = 5

// Color is one representative color with the percentage of sampled pixels
// it best represents.
type Color struct {
	RGB       domaincolor.RGB
	Dominance float64
}

// Extractor is the port onto the external clustering implementation: given
// a pixel buffer, return up to count representative colors, most dominant
// first.
type Extractor interface {
	Extract(img *image.Processed, count int) ([]Color, error)
}

// ClampCount folds an arbitrary requested palette size into [1, MaxColors].
func ClampCount(count int) int {
	if count < 1 {
		return 1
	}
	if count > MaxColors {
		return MaxColors
	}
	return count
}
