package scene

import (
	"fmt"

	"dyelens/internal/domain/catalog"
	domaincolor "dyelens/internal/domain/color"
)

// Layout constants. Label truncation uses a fixed character budget so the
// layout width stays predictable without measuring rendered glyphs.
const (
	canvasWidth   = 640
	headerHeight  = 56
	rowHeight     = 118
	swatchWidth   = 148
	swatchHeight  = 86
	labelBudget   = 18
	ellipsis      = "…"
	background    = "#1e1f22"
	panelText     = "#e8e8e8"
	mutedText     = "#9a9a9a"
	swatchOutline = "#3a3b3e"
)

// textLuminanceThreshold picks black or white label text over a swatch.
const textLuminanceThreshold = 0.5

// Composer builds scenes comparing extracted colors with matched dyes.
// Composing always succeeds; degenerate input yields a placeholder scene.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// ComposeMatches lays out one row per palette match: the extracted swatch,
// an arrow, the matched dye swatch, and an analysis panel.
func (c *Composer) ComposeMatches(matches []catalog.PaletteMatch) *Scene {
	if len(matches) == 0 {
		return c.Placeholder("No colors could be matched")
	}

	s := &Scene{
		Width:      canvasWidth,
		Height:     headerHeight + rowHeight*len(matches) + 16,
		Background: background,
	}

	s.Elements = append(s.Elements, Text{
		X: 24, Y: 36, Size: 20, Fill: panelText, Weight: "bold",
		Content: "Closest dye matches",
	})

	for i, m := range matches {
		s.Elements = append(s.Elements, Group{
			Tx:       0,
			Ty:       float64(headerHeight + i*rowHeight),
			Elements: c.matchRow(m),
		})
	}
	return s
}

func (c *Composer) matchRow(m catalog.PaletteMatch) []Element {
	var els []Element

	extractedHex := m.Extracted.Hex()
	matchedColor, err := domaincolor.ParseHex(m.Entry.Hex)
	if err != nil {
		// Catalog hexes are validated at load time; fall back visibly
		// rather than dropping the row.
		matchedColor = domaincolor.RGB{R: 128, G: 128, B: 128}
	}

	els = append(els, c.swatch(24, 12, m.Extracted, extractedHex))
	els = append(els, arrow(186, 12+swatchHeight/2, 238)...)
	els = append(els, c.swatch(250, 12, matchedColor, TruncateLabel(m.Entry.Name, labelBudget)))

	// Analysis panel.
	panelX := float64(250 + swatchWidth + 24)
	band := domaincolor.DistanceBand(m.Distance)
	els = append(els,
		Text{X: panelX, Y: 30, Size: 14, Fill: panelText, Weight: "bold",
			Content: TruncateLabel(m.Entry.Name, labelBudget)},
		badge(panelX, 40, string(band)),
		Text{X: panelX, Y: 76, Size: 12, Fill: mutedText,
			Content: fmt.Sprintf("Δ %.1f · %.0f%% of image", m.Distance, m.Dominance)},
		Text{X: panelX, Y: 94, Size: 12, Fill: mutedText,
			Content: fmt.Sprintf("%s · %s", m.Entry.Hex, m.Extracted.HSV())},
	)
	return els
}

// swatch draws a filled rectangle with a legible centered label: black text
// over light colors, white over dark, by luminance threshold.
func (c *Composer) swatch(x, y float64, fill domaincolor.RGB, label string) Element {
	return Group{Tx: x, Ty: y, Elements: []Element{
		Rect{X: 0, Y: 0, W: swatchWidth, H: swatchHeight, Radius: 6,
			Fill: fill.Hex(), Stroke: swatchOutline, StrokeWidth: 1},
		Text{X: swatchWidth / 2, Y: swatchHeight/2 + 5, Size: 13,
			Fill: LabelColor(fill), Anchor: "middle", Content: EscapeText(label)},
	}}
}

func arrow(x1, y, x2 float64) []Element {
	return []Element{
		Line{X1: x1, Y1: y, X2: x2, Y2: y, Stroke: mutedText, Width: 2},
		Line{X1: x2 - 8, Y1: y - 6, X2: x2, Y2: y, Stroke: mutedText, Width: 2},
		Line{X1: x2 - 8, Y1: y + 6, X2: x2, Y2: y, Stroke: mutedText, Width: 2},
	}
}

func badge(x, y float64, label string) Element {
	w := float64(14 + 8*len(label))
	return Group{Tx: x, Ty: y, Elements: []Element{
		Rect{X: 0, Y: 0, W: w, H: 20, Radius: 10, Fill: "#2c2d31",
			Stroke: swatchOutline, StrokeWidth: 1},
		Text{X: w / 2, Y: 14, Size: 11, Fill: panelText, Anchor: "middle",
			Content: EscapeText(label)},
	}}
}

// Placeholder is a fixed-size scene with an explanatory message, used for
// degenerate input so composing never fails.
func (c *Composer) Placeholder(message string) *Scene {
	return &Scene{
		Width:      480,
		Height:     200,
		Background: background,
		Elements: []Element{
			Text{X: 240, Y: 104, Size: 16, Fill: panelText, Anchor: "middle",
				Content: EscapeText(message)},
		},
	}
}

// LabelColor picks black or white text for a given background color.
func LabelColor(bg domaincolor.RGB) string {
	if domaincolor.RelativeLuminance(bg) > textLuminanceThreshold {
		return "#000000"
	}
	return "#ffffff"
}

// TruncateLabel deterministically cuts a label to budget runes, marking the
// cut with an ellipsis.
func TruncateLabel(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	if budget <= 1 {
		return ellipsis
	}
	return string(runes[:budget-1]) + ellipsis
}
