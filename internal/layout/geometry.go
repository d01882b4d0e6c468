package layout

import (
	"math"
	"unicode/utf8"
)

const PointsPerInch = 72.0

// avgGlyphWidth is the mean advance of the embedded font, in ems.
const avgGlyphWidth = 0.6

func Inch(v float64) float64 { return v * PointsPerInch }

type Point struct{ X, Y float64 }

// Rect uses page coordinates: origin top-left, y grows downward.
type Rect struct{ X, Y, W, H float64 }

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Contains(o Rect) bool {
	const eps = 1e-9
	return o.X >= r.X-eps && o.Y >= r.Y-eps && o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Offset shifts every slot on one side of the sheet, in points.
type Offset struct{ X, Y float64 }

// Rotate turns p about origin by deg degrees, counter-clockwise as seen on the page.
func Rotate(p, origin Point, deg float64) Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	dx, dy := p.X-origin.X, p.Y-origin.Y
	return Point{
		X: origin.X + dx*cos + dy*sin,
		Y: origin.Y - dx*sin + dy*cos,
	}
}

// TextFootprint is the bounding box of a w×h text run whose top-left corner
// sits at anchor, after rotating it by deg about that corner.
func TextFootprint(anchor Point, w, h, deg float64) Rect {
	corners := [4]Point{
		anchor,
		{anchor.X + w, anchor.Y},
		{anchor.X, anchor.Y + h},
		{anchor.X + w, anchor.Y + h},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := Rotate(c, anchor, deg)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// TextWidth estimates the advance of s at the given font size.
func TextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * avgGlyphWidth
}
