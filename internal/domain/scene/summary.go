package scene

import (
	"fmt"
	"strings"

	"dyelens/internal/domain/catalog"
	domaincolor "dyelens/internal/domain/color"
)

// Summary renders the textual companion to a match scene: one line per
// match with quality label, dominance, and hex/RGB/HSV strings.
func Summary(matches []catalog.PaletteMatch) string {
	if len(matches) == 0 {
		return "No colors could be matched."
	}

	var b strings.Builder
	for i, m := range matches {
		band := domaincolor.DistanceBand(m.Distance)
		fmt.Fprintf(&b, "%d. %s — %s match (Δ %.1f), %.0f%% of image · %s · %s · %s\n",
			i+1,
			m.Entry.Name,
			band,
			m.Distance,
			m.Dominance,
			m.Extracted.Hex(),
			m.Extracted.String(),
			m.Extracted.HSV().String(),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ComparisonSummary renders the textual companion to a comparison scene.
func ComparisonSummary(cmp *Comparison) string {
	if cmp == nil {
		return "Pick at least two dyes to compare."
	}

	var b strings.Builder
	for i := 0; i < len(cmp.Dyes); i++ {
		for j := i + 1; j < len(cmp.Dyes); j++ {
			fmt.Fprintf(&b, "%s vs %s: Δ %.1f, contrast %.2f (%s)\n",
				cmp.Dyes[i].Name, cmp.Dyes[j].Name,
				cmp.Distance[i][j], cmp.Contrast[i][j],
				domaincolor.ContrastBandOf(cmp.Contrast[i][j]))
		}
	}
	si, sj := cmp.MostSimilar[0], cmp.MostSimilar[1]
	di, dj := cmp.MostDifferent[0], cmp.MostDifferent[1]
	fmt.Fprintf(&b, "Most similar: %s and %s. Most different: %s and %s.",
		cmp.Dyes[si].Name, cmp.Dyes[sj].Name, cmp.Dyes[di].Name, cmp.Dyes[dj].Name)
	return b.String()
}
