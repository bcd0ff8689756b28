package palette

import (
	goimage "image"
	"sort"

	"github.com/EdlinOrg/prominentcolor"

	domaincolor "dyelens/internal/domain/color"
	"dyelens/internal/domain/image"
	"dyelens/internal/platform/errors"
)

// ProminentExtractor backs the Extractor port with k-means clustering.
type ProminentExtractor struct{}

func NewProminentExtractor() *ProminentExtractor {
	return &ProminentExtractor{}
}

func (e *ProminentExtractor) Extract(img *image.Processed, count int) ([]Color, error) {
	const op = "palette.extract"

	if img == nil || len(img.Pixels) == 0 || img.Width <= 0 || img.Height <= 0 {
		return nil, errors.New(errors.KindNoColors, op, "no pixels to extract colors from")
	}
	count = ClampCount(count)

	rgba := &goimage.RGBA{
		Pix:    img.Pixels,
		Stride: 4 * img.Width,
		Rect:   goimage.Rect(0, 0, img.Width, img.Height),
	}

	items, err := prominentcolor.KmeansWithAll(count, rgba,
		prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, nil)
	if err != nil {
		return nil, errors.Wrap(errors.KindNoColors, op, "color clustering failed", err)
	}
	if len(items) == 0 {
		return nil, errors.New(errors.KindNoColors, op, "no colors extracted")
	}

	total := 0
	for _, item := range items {
		total += item.Cnt
	}
	if total == 0 {
		return nil, errors.New(errors.KindNoColors, op, "no colors extracted")
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Cnt > items[j].Cnt
	})

	colors := make([]Color, 0, len(items))
	for _, item := range items {
		colors = append(colors, Color{
			RGB: domaincolor.RGB{
				R: uint8(item.Color.R),
				G: uint8(item.Color.G),
				B: uint8(item.Color.B),
			},
			Dominance: float64(item.Cnt) / float64(total) * 100,
		})
	}
	return colors, nil
}
