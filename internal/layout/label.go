package layout

import "fmt"

// LabelSpec is a LETTER sheet of 30 adhesive 2.625" x 1" labels.
func LabelSpec() Spec {
	return Spec{
		PageWidth:   Inch(8.5),
		PageHeight:  Inch(11),
		CellWidth:   Inch(2.625),
		CellHeight:  Inch(1),
		Columns:     3,
		Rows:        10,
		MarginX:     Inch(3.0 / 16),
		MarginY:     Inch(0.5),
		ColumnGap:   Inch(1.0 / 8),
		PaddingX:    Inch(0.125),
		PaddingY:    Inch(0.0625),
		QRSize:      Inch(1) * 0.9,
		QRGap:       Inch(0.5),
		FontSize:    6,
		TextGap:     Inch(1.0 / 32),
		TextInset:   Inch(0.2),
		FragmentLen: 5,
		MirrorBack:  false,
	}
}

// LabelCell is where one label's elements go.
type LabelCell struct {
	PrivateQR  Rect
	PublicQR   Rect
	TextAnchor Point
}

// LabelPlacement puts the two QR codes side by side and the label text to
// the right of the public one, reading upward from near the cell bottom.
func LabelPlacement(s Spec, slot Slot) LabelCell {
	o := s.CellOrigin(slot, Front)
	x, y := o.X+s.PaddingX, o.Y+s.PaddingY

	priv := Rect{X: x, Y: y, W: s.QRSize, H: s.QRSize}
	pub := Rect{X: priv.Right() + s.QRGap, Y: y, W: s.QRSize, H: s.QRSize}
	return LabelCell{
		PrivateQR:  priv,
		PublicQR:   pub,
		TextAnchor: Point{X: pub.Right() + s.TextGap, Y: y + s.CellHeight - s.TextInset},
	}
}

type LabelSheet struct {
	spec Spec
}

func NewLabelSheet(s Spec) (*LabelSheet, error) {
	if err := s.validate(Front); err != nil {
		return nil, err
	}
	for _, slot := range s.Slots(1) {
		pl := LabelPlacement(s, slot)
		cell := s.Cell(slot, Front)
		if !cell.Contains(pl.PrivateQR) || !cell.Contains(pl.PublicQR) {
			return nil, fmt.Errorf("%w: qr codes do not fit a %gx%g label", ErrInvalidSpec, s.CellWidth, s.CellHeight)
		}
		if err := checkText(pl.TextAnchor, s, cell, pl.PrivateQR, pl.PublicQR); err != nil {
			return nil, err
		}
	}
	return &LabelSheet{spec: s}, nil
}

func (l *LabelSheet) Name() string { return "label-sheet" }
func (l *LabelSheet) Spec() Spec   { return l.spec }

func (l *LabelSheet) AddSheet(c Canvas, bg Backgrounds) (Pages, error) {
	page, err := c.AddPage(bg.Front)
	if err != nil {
		return Pages{}, err
	}
	return Pages{Front: page, Back: -1}, nil
}

func (l *LabelSheet) PlaceCard(c Canvas, pages Pages, slot Slot, card Card) error {
	pl := LabelPlacement(l.spec, slot)
	if err := c.DrawImage(pages.Front, card.PrivateQR, pl.PrivateQR); err != nil {
		return fmt.Errorf("draw private qr: %w", err)
	}
	if err := c.DrawImage(pages.Front, card.PublicQR, pl.PublicQR); err != nil {
		return fmt.Errorf("draw public qr: %w", err)
	}
	text := Label(card.CurrencyCode, card.Address, l.spec.FragmentLen)
	if err := c.DrawText(pages.Front, text, pl.TextAnchor, l.spec.FontSize, TextAngle); err != nil {
		return fmt.Errorf("draw label: %w", err)
	}
	return nil
}
