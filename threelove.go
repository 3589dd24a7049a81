package threelove

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(c.A * 255),
	}
}

// WhitePixel is a 1x1 white image used by default for solid color sprites.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Props holds a component's current property values. The parent that creates a
// component retains the map it passes down and may mutate it between renders
// to drive prop updates; children observe the new values on their next render.
// Setup functions never observe later mutations: [UseScene] hands setup a
// snapshot taken at mount time.
type Props map[string]any

// Clone returns a shallow copy of the props map. A nil receiver yields an
// empty, non-nil map so setup functions can index it safely.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Float returns the float64 value stored under key, or def if the key is
// absent or holds a different type. Int values are widened.
func (p Props) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Int returns the int value stored under key, or def if the key is absent or
// holds a different type.
func (p Props) Int(key string, def int) int {
	if v, ok := p[key].(int); ok {
		return v
	}
	return def
}

// String returns the string value stored under key, or def if the key is
// absent or holds a different type.
func (p Props) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}
