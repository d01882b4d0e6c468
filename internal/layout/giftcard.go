package layout

import "fmt"

// GiftCardSpec is a LETTER sheet of 2x4 business-size cards printed duplex.
func GiftCardSpec() Spec {
	bleed := Inch(0.125)
	cellW, cellH := Inch(3.5)+2*bleed, Inch(2)+2*bleed
	return Spec{
		PageWidth:   Inch(8.5),
		PageHeight:  Inch(11),
		CellWidth:   cellW,
		CellHeight:  cellH,
		Columns:     2,
		Rows:        4,
		MarginX:     (Inch(8.5) - 2*cellW) / 2,
		MarginY:     (Inch(11) - 4*cellH) / 2,
		Bleed:       bleed,
		QRSize:      Inch(1.25),
		QRGap:       Inch(0.25),
		FontSize:    9,
		TextGap:     Inch(1.0 / 16),
		FragmentLen: 10,
		MirrorBack:  true,
	}
}

// GiftCell is where one card's elements go on each side.
type GiftCell struct {
	FrontCard  Rect
	BackCard   Rect
	PrivateQR  Rect
	PublicQR   Rect
	TextAnchor Point
}

func (s Spec) card(slot Slot, side Side) Rect {
	c := s.Cell(slot, side)
	return Rect{X: c.X + s.Bleed, Y: c.Y + s.Bleed, W: c.W - 2*s.Bleed, H: c.H - 2*s.Bleed}
}

// GiftPlacement puts the private QR at the right edge of the front and the
// public QR at the left edge of the back, both vertically centred.
func GiftPlacement(s Spec, slot Slot) GiftCell {
	front, back := s.card(slot, Front), s.card(slot, Back)
	priv := Rect{X: front.Right() - s.QRGap - s.QRSize, Y: front.Y + (front.H-s.QRSize)/2, W: s.QRSize, H: s.QRSize}
	pub := Rect{X: back.X + s.QRGap, Y: back.Y + (back.H-s.QRSize)/2, W: s.QRSize, H: s.QRSize}
	return GiftCell{
		FrontCard:  front,
		BackCard:   back,
		PrivateQR:  priv,
		PublicQR:   pub,
		TextAnchor: Point{X: pub.Right() + s.TextGap, Y: pub.Bottom()},
	}
}

type GiftCardSheet struct {
	spec Spec
}

func NewGiftCardSheet(s Spec) (*GiftCardSheet, error) {
	if err := s.validate(Front, Back); err != nil {
		return nil, err
	}
	for _, slot := range s.Slots(1) {
		pl := GiftPlacement(s, slot)
		if !pl.FrontCard.Contains(pl.PrivateQR) || !pl.BackCard.Contains(pl.PublicQR) {
			return nil, fmt.Errorf("%w: qr codes do not fit a %gx%g card", ErrInvalidSpec, pl.FrontCard.W, pl.FrontCard.H)
		}
		if err := checkText(pl.TextAnchor, s, pl.BackCard, pl.PublicQR); err != nil {
			return nil, err
		}
	}
	return &GiftCardSheet{spec: s}, nil
}

func (g *GiftCardSheet) Name() string { return "gift-card" }
func (g *GiftCardSheet) Spec() Spec   { return g.spec }

// AddSheet adds the front page then the back page.
func (g *GiftCardSheet) AddSheet(c Canvas, bg Backgrounds) (Pages, error) {
	front, err := c.AddPage(bg.Front)
	if err != nil {
		return Pages{}, err
	}
	back, err := c.AddPage(bg.Back)
	if err != nil {
		return Pages{}, err
	}
	return Pages{Front: front, Back: back}, nil
}

func (g *GiftCardSheet) PlaceCard(c Canvas, pages Pages, slot Slot, card Card) error {
	pl := GiftPlacement(g.spec, slot)
	if err := c.DrawImage(pages.Front, card.PrivateQR, pl.PrivateQR); err != nil {
		return fmt.Errorf("draw private qr: %w", err)
	}
	if err := c.DrawImage(pages.Back, card.PublicQR, pl.PublicQR); err != nil {
		return fmt.Errorf("draw public qr: %w", err)
	}
	text := Label(card.CurrencyCode, card.Address, g.spec.FragmentLen)
	if err := c.DrawText(pages.Back, text, pl.TextAnchor, g.spec.FontSize, TextAngle); err != nil {
		return fmt.Errorf("draw address: %w", err)
	}
	return nil
}
