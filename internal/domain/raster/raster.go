// Package raster turns composed scenes into raster bytes. The renderer is
// an external collaborator behind the Rasterizer port, bounded by its own
// timeout separate from the fetch budget.
package raster

import (
	"context"

	"dyelens/internal/domain/scene"
)

// Rasterizer renders a scene to image bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, s *scene.Scene) ([]byte, error)
}
