// Package scene models a renderer-agnostic visual layout: an ordered list
// of drawable elements on a fixed canvas. A Scene is immutable once built
// and is consumed exactly once by the rasterizer adapter.
package scene

import (
	"bytes"
	"encoding/xml"
)

// Scene is a composed drawing. Elements are painted in order.
type Scene struct {
	Width      int
	Height     int
	Background string
	Elements   []Element
}

// Element is a drawable. The set is closed: Rect, Text, Line, Group.
type Element interface {
	element()
}

type Rect struct {
	X, Y, W, H  float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Radius      float64
}

// Text content must already be escaped for the target markup; the composer
// escapes anything user- or catalog-supplied via EscapeText.
type Text struct {
	X, Y    float64
	Content string
	Size    float64
	Fill    string
	Anchor  string // "start", "middle" or "end"; empty means "start"
	Weight  string // "" or "bold"
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Width          float64
}

// Group translates its children as a unit.
type Group struct {
	Tx, Ty   float64
	Elements []Element
}

func (Rect) element()  {}
func (Text) element()  {}
func (Line) element()  {}
func (Group) element() {}

// EscapeText escapes a user- or catalog-supplied string for embedding in
// the scene's markup.
func EscapeText(s string) string {
	var buf bytes.Buffer
	// EscapeText on a bytes.Buffer never returns an error.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
