package layout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSpec = errors.New("invalid layout spec")

// TextAngle turns labels so they read bottom to top.
const TextAngle = 90.0

// longest currency code the label text is validated against
const maxCodeLen = 5

type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// Slot is a grid position. Slots are visited row-major within a sheet.
type Slot struct {
	Sheet  int
	Row    int
	Column int
}

// Spec is the full geometry of one strategy, in points.
type Spec struct {
	PageWidth  float64
	PageHeight float64

	CellWidth  float64
	CellHeight float64
	Columns    int
	Rows       int
	MarginX    float64
	MarginY    float64
	ColumnGap  float64
	PaddingX   float64
	PaddingY   float64
	Bleed      float64

	QRSize float64
	QRGap  float64

	FontSize    float64
	TextGap     float64
	TextInset   float64
	FragmentLen int

	FrontOffset Offset
	BackOffset  Offset
	MirrorBack  bool
}

func (s Spec) PerSheet() int { return s.Rows * s.Columns }

// Slots lists every slot of the run in placement order.
func (s Spec) Slots(sheets int) []Slot {
	out := make([]Slot, 0, sheets*s.PerSheet())
	for sheet := 0; sheet < sheets; sheet++ {
		for row := 0; row < s.Rows; row++ {
			for col := 0; col < s.Columns; col++ {
				out = append(out, Slot{Sheet: sheet, Row: row, Column: col})
			}
		}
	}
	return out
}

// CellOrigin is the top-left corner of the slot's cell on the given side.
func (s Spec) CellOrigin(slot Slot, side Side) Point {
	col := slot.Column
	off := s.FrontOffset
	if side == Back {
		off = s.BackOffset
		if s.MirrorBack {
			col = s.Columns - 1 - col
		}
	}
	return Point{
		X: s.MarginX + float64(col)*(s.CellWidth+s.ColumnGap) + off.X,
		Y: s.MarginY + float64(slot.Row)*s.CellHeight + off.Y,
	}
}

func (s Spec) Cell(slot Slot, side Side) Rect {
	o := s.CellOrigin(slot, side)
	return Rect{X: o.X, Y: o.Y, W: s.CellWidth, H: s.CellHeight}
}

func (s Spec) Page() Rect { return Rect{W: s.PageWidth, H: s.PageHeight} }

// Label is the short text printed next to the public QR.
func Label(code, address string, n int) string {
	if n > 0 && len(address) > n {
		address = address[len(address)-n:]
	}
	return code + " " + address
}

// validate checks everything that does not depend on the strategy.
func (s Spec) validate(sides ...Side) error {
	switch {
	case s.PageWidth <= 0 || s.PageHeight <= 0:
		return fmt.Errorf("%w: page %gx%g", ErrInvalidSpec, s.PageWidth, s.PageHeight)
	case s.Columns <= 0 || s.Rows <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidSpec, s.Columns, s.Rows)
	case s.CellWidth <= 0 || s.CellHeight <= 0 || s.QRSize <= 0:
		return fmt.Errorf("%w: non-positive cell or qr size", ErrInvalidSpec)
	case s.FontSize <= 0:
		return fmt.Errorf("%w: font size %g", ErrInvalidSpec, s.FontSize)
	}
	page := s.Page()
	for _, side := range sides {
		for _, slot := range s.Slots(1) {
			if c := s.Cell(slot, side); !page.Contains(c) {
				return fmt.Errorf("%w: %s cell r%d c%d at (%.1f,%.1f) leaves the page",
					ErrInvalidSpec, side, slot.Row, slot.Column, c.X, c.Y)
			}
		}
	}
	return nil
}

// labelSample is the widest label a Spec has to fit.
func (s Spec) labelSample() string {
	return Label(strings.Repeat("W", maxCodeLen), strings.Repeat("W", s.FragmentLen), s.FragmentLen)
}

func checkText(anchor Point, s Spec, within Rect, avoid ...Rect) error {
	fp := TextFootprint(anchor, TextWidth(s.labelSample(), s.FontSize), s.FontSize, TextAngle)
	if !within.Contains(fp) {
		return fmt.Errorf("%w: label text leaves its cell", ErrInvalidSpec)
	}
	for _, r := range avoid {
		if fp.Intersects(r) {
			return fmt.Errorf("%w: label text overlaps a qr code", ErrInvalidSpec)
		}
	}
	return nil
}
