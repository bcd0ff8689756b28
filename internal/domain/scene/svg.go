package scene

import (
	"fmt"
	"strings"
)

// SVG serializes the scene. Text content is written as-is (the composer
// escapes it up front); everything else the writer emits is internal.
func (s *Scene) SVG() []byte {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.Width, s.Height, s.Width, s.Height)
	if s.Background != "" {
		fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
			s.Width, s.Height, s.Background)
	}
	writeElements(&b, s.Elements)
	b.WriteString(`</svg>`)

	return []byte(b.String())
}

func writeElements(b *strings.Builder, elements []Element) {
	for _, el := range elements {
		switch e := el.(type) {
		case Rect:
			fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s"`,
				num(e.X), num(e.Y), num(e.W), num(e.H))
			if e.Radius > 0 {
				fmt.Fprintf(b, ` rx="%s"`, num(e.Radius))
			}
			fmt.Fprintf(b, ` fill="%s"`, orNone(e.Fill))
			if e.Stroke != "" {
				fmt.Fprintf(b, ` stroke="%s" stroke-width="%s"`, e.Stroke, num(e.StrokeWidth))
			}
			b.WriteString(`/>`)
		case Text:
			anchor := e.Anchor
			if anchor == "" {
				anchor = "start"
			}
			fmt.Fprintf(b, `<text x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s" text-anchor="%s"`,
				num(e.X), num(e.Y), num(e.Size), orNone(e.Fill), anchor)
			if e.Weight != "" {
				fmt.Fprintf(b, ` font-weight="%s"`, e.Weight)
			}
			fmt.Fprintf(b, `>%s</text>`, e.Content)
		case Line:
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
				num(e.X1), num(e.Y1), num(e.X2), num(e.Y2), e.Stroke, num(e.Width))
		case Group:
			fmt.Fprintf(b, `<g transform="translate(%s %s)">`, num(e.Tx), num(e.Ty))
			writeElements(b, e.Elements)
			b.WriteString(`</g>`)
		}
	}
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func orNone(fill string) string {
	if fill == "" {
		return "none"
	}
	return fill
}
