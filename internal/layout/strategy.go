package layout

import "image"

// Canvas is what the layout engine draws on. Pages are addressed by the index
// AddPage returned.
type Canvas interface {
	AddPage(background image.Image) (int, error)
	DrawImage(page int, img image.Image, r Rect) error
	DrawText(page int, text string, at Point, size, angle float64) error
}

// Card is everything placed for one slot, all taken from the same key pair.
type Card struct {
	CurrencyCode string
	Address      string
	PrivateQR    image.Image
	PublicQR     image.Image
}

// Backgrounds are optional full-page images, one per side.
type Backgrounds struct {
	Front image.Image
	Back  image.Image
}

// Pages holds the canvas page indices of one sheet. Back is -1 when single-sided.
type Pages struct {
	Front int
	Back  int
}

type Strategy interface {
	Name() string
	Spec() Spec
	AddSheet(c Canvas, bg Backgrounds) (Pages, error)
	PlaceCard(c Canvas, pages Pages, slot Slot, card Card) error
}

// New picks the gift-card strategy when printToCard is set, the label sheet otherwise.
func New(printToCard bool, front, back Offset, mirrorBack bool) (Strategy, error) {
	if printToCard {
		spec := GiftCardSpec()
		spec.FrontOffset = front
		spec.BackOffset = back
		spec.MirrorBack = mirrorBack
		return NewGiftCardSheet(spec)
	}
	spec := LabelSpec()
	spec.FrontOffset = front
	return NewLabelSheet(spec)
}
