package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/EdgeApp/edge-gift-cards/internal/layout"
)

const fontFamily = "goregular"

type op struct {
	img   image.Image
	rect  layout.Rect
	text  string
	at    layout.Point
	size  float64
	angle float64
}

type page struct {
	background image.Image
	ops        []op
}

// Document collects pages in memory and serializes them with gopdf on Bytes.
// Nothing touches the filesystem.
type Document struct {
	width  float64
	height float64
	pages  []*page
}

func NewDocument(width, height float64) *Document {
	return &Document{width: width, height: height}
}

func (d *Document) PageCount() int { return len(d.pages) }

func (d *Document) AddPage(background image.Image) (int, error) {
	d.pages = append(d.pages, &page{background: background})
	return len(d.pages) - 1, nil
}

func (d *Document) DrawImage(n int, img image.Image, r layout.Rect) error {
	p, err := d.page(n)
	if err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("page %d: nil image", n)
	}
	p.ops = append(p.ops, op{img: img, rect: r})
	return nil
}

func (d *Document) DrawText(n int, text string, at layout.Point, size, angle float64) error {
	p, err := d.page(n)
	if err != nil {
		return err
	}
	p.ops = append(p.ops, op{text: text, at: at, size: size, angle: angle})
	return nil
}

// Texts returns the strings drawn on page n, in drawing order.
func (d *Document) Texts(n int) []string {
	if n < 0 || n >= len(d.pages) {
		return nil
	}
	var out []string
	for _, o := range d.pages[n].ops {
		if o.img == nil {
			out = append(out, o.text)
		}
	}
	return out
}

func (d *Document) page(n int) (*page, error) {
	if n < 0 || n >= len(d.pages) {
		return nil, fmt.Errorf("page %d out of range (have %d)", n, len(d.pages))
	}
	return d.pages[n], nil
}

// Bytes renders every page into one PDF.
func (d *Document) Bytes() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{Unit: gopdf.UnitPT, PageSize: gopdf.Rect{W: d.width, H: d.height}})
	if err := pdf.AddTTFFontData(fontFamily, goregular.TTF); err != nil {
		return nil, fmt.Errorf("add font: %w", err)
	}

	for i, p := range d.pages {
		pdf.AddPage()
		if p.background != nil {
			if err := pdf.ImageFrom(p.background, 0, 0, &gopdf.Rect{W: d.width, H: d.height}); err != nil {
				return nil, fmt.Errorf("page %d background: %w", i, err)
			}
		}
		for _, o := range p.ops {
			if err := d.replay(pdf, o); err != nil {
				return nil, fmt.Errorf("page %d: %w", i, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) replay(pdf *gopdf.GoPdf, o op) error {
	if o.img != nil {
		return pdf.ImageFrom(o.img, o.rect.X, o.rect.Y, &gopdf.Rect{W: o.rect.W, H: o.rect.H})
	}

	if err := pdf.SetFont(fontFamily, "", o.size); err != nil {
		return fmt.Errorf("set font: %w", err)
	}
	if o.angle != 0 {
		pdf.Rotate(o.angle, o.at.X, o.at.Y)
		defer pdf.RotateReset()
	}
	// Cell takes y as the top of the line, which is what the layout anchors on.
	pdf.SetXY(o.at.X, o.at.Y)
	return pdf.Cell(&gopdf.Rect{W: layout.TextWidth(o.text, o.size), H: o.size}, o.text)
}
