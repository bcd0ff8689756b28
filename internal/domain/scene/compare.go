package scene

import (
	"fmt"

	"dyelens/internal/domain/catalog"
	domaincolor "dyelens/internal/domain/color"
)

// Comparison holds 2-4 catalog entries with their pairwise distance and
// contrast matrices. Both matrices are symmetric by construction.
type Comparison struct {
	Dyes     []catalog.Entry
	Colors   []domaincolor.RGB
	Distance [][]float64
	Contrast [][]float64

	// Index pairs with the global minimum and maximum distance; ties keep
	// the first-encountered pair in (i, j) iteration order.
	MostSimilar   [2]int
	MostDifferent [2]int
}

// MinComparisonDyes and MaxComparisonDyes bound a comparison set.
const (
	MinComparisonDyes = 2
	MaxComparisonDyes = 4
)

// NewComparison builds the pairwise matrices. Fewer than two dyes returns
// nil; the composer renders a placeholder for that case.
func NewComparison(dyes []catalog.Entry) *Comparison {
	if len(dyes) < MinComparisonDyes {
		return nil
	}
	if len(dyes) > MaxComparisonDyes {
		dyes = dyes[:MaxComparisonDyes]
	}

	n := len(dyes)
	cmp := &Comparison{
		Dyes:     dyes,
		Colors:   make([]domaincolor.RGB, n),
		Distance: make([][]float64, n),
		Contrast: make([][]float64, n),
	}
	for i, d := range dyes {
		c, err := domaincolor.ParseHex(d.Hex)
		if err != nil {
			c = domaincolor.RGB{R: 128, G: 128, B: 128}
		}
		cmp.Colors[i] = c
		cmp.Distance[i] = make([]float64, n)
		cmp.Contrast[i] = make([]float64, n)
	}

	first := true
	for i := 0; i < n; i++ {
		cmp.Contrast[i][i] = 1
		for j := i + 1; j < n; j++ {
			d := domaincolor.Distance(cmp.Colors[i], cmp.Colors[j])
			r := domaincolor.ContrastRatio(cmp.Colors[i], cmp.Colors[j])
			cmp.Distance[i][j], cmp.Distance[j][i] = d, d
			cmp.Contrast[i][j], cmp.Contrast[j][i] = r, r

			if first || d < cmp.Distance[cmp.MostSimilar[0]][cmp.MostSimilar[1]] {
				cmp.MostSimilar = [2]int{i, j}
			}
			if first || d > cmp.Distance[cmp.MostDifferent[0]][cmp.MostDifferent[1]] {
				cmp.MostDifferent = [2]int{i, j}
			}
			first = false
		}
	}
	return cmp
}

// ComposeComparison lays out the comparison: one swatch per dye and a panel
// of pairwise rows, with most-similar and most-different badges.
func (c *Composer) ComposeComparison(cmp *Comparison) *Scene {
	if cmp == nil {
		return c.Placeholder("Pick at least two dyes to compare")
	}

	n := len(cmp.Dyes)
	pairs := n * (n - 1) / 2
	s := &Scene{
		Width:      canvasWidth,
		Height:     headerHeight + swatchHeight + 40 + pairs*26 + 24,
		Background: background,
	}

	s.Elements = append(s.Elements, Text{
		X: 24, Y: 36, Size: 20, Fill: panelText, Weight: "bold",
		Content: "Dye comparison",
	})

	colWidth := float64(canvasWidth-48) / float64(n)
	for i, d := range cmp.Dyes {
		x := 24 + colWidth*float64(i)
		s.Elements = append(s.Elements, Group{Tx: x, Ty: headerHeight, Elements: []Element{
			Rect{X: 0, Y: 0, W: colWidth - 12, H: swatchHeight, Radius: 6,
				Fill: cmp.Colors[i].Hex(), Stroke: swatchOutline, StrokeWidth: 1},
			Text{X: (colWidth - 12) / 2, Y: swatchHeight/2 + 5, Size: 12,
				Fill: LabelColor(cmp.Colors[i]), Anchor: "middle",
				Content: EscapeText(TruncateLabel(d.Name, labelBudget))},
		}})
	}

	y := float64(headerHeight + swatchHeight + 32)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			line := fmt.Sprintf("%s ↔ %s · Δ %.1f · contrast %.2f (%s)",
				TruncateLabel(cmp.Dyes[i].Name, 12),
				TruncateLabel(cmp.Dyes[j].Name, 12),
				cmp.Distance[i][j],
				cmp.Contrast[i][j],
				domaincolor.ContrastBandOf(cmp.Contrast[i][j]))
			els := []Element{
				Text{X: 24, Y: 0, Size: 12, Fill: panelText, Content: EscapeText(line)},
			}
			if cmp.MostSimilar == [2]int{i, j} {
				els = append(els, badge(490, -14, "most similar"))
			} else if cmp.MostDifferent == [2]int{i, j} {
				els = append(els, badge(490, -14, "most different"))
			}
			s.Elements = append(s.Elements, Group{Tx: 0, Ty: y, Elements: els})
			y += 26
		}
	}
	return s
}
