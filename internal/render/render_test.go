package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/EdgeApp/edge-gift-cards/internal/layout"
)

func square(px int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, px, px))
	for x := 0; x < px; x++ {
		img.Set(x, x, color.Black)
	}
	return img
}

func TestDocumentBytes(t *testing.T) {
	d := NewDocument(612, 792)
	front, _ := d.AddPage(nil)
	back, _ := d.AddPage(square(8))

	if err := d.DrawImage(front, square(16), layout.Rect{X: 10, Y: 10, W: 50, H: 50}); err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}
	if err := d.DrawText(back, "ltc abcde", layout.Point{X: 100, Y: 100}, 6, layout.TextAngle); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}
	if err := d.DrawText(back, "flat", layout.Point{X: 10, Y: 10}, 9, 0); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}

	b, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", b[:min(len(b), 16)])
	}
	if d.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", d.PageCount())
	}
	if got := d.Texts(back); len(got) != 2 || got[0] != "ltc abcde" || got[1] != "flat" {
		t.Errorf("Texts(back) = %v", got)
	}
	if got := d.Texts(front); len(got) != 0 {
		t.Errorf("Texts(front) = %v, want none", got)
	}
}

func TestDocumentErrors(t *testing.T) {
	d := NewDocument(612, 792)
	if _, err := d.Bytes(); err == nil {
		t.Error("Bytes() on empty document: error = nil")
	}
	if err := d.DrawImage(0, square(4), layout.Rect{}); err == nil {
		t.Error("DrawImage() without pages: error = nil")
	}
	p, _ := d.AddPage(nil)
	if err := d.DrawImage(p, nil, layout.Rect{}); err == nil {
		t.Error("DrawImage(nil) error = nil")
	}
	if err := d.DrawText(p+1, "x", layout.Point{}, 6, 0); err == nil {
		t.Error("DrawText() on missing page: error = nil")
	}
}

func TestLoadTemplate(t *testing.T) {
	img, err := LoadTemplate("", 612, 792)
	if err != nil || img != nil {
		t.Fatalf("LoadTemplate(\"\") = %v, %v; want nil, nil", img, err)
	}

	path := filepath.Join(t.TempDir(), "front.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, square(40)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err = LoadTemplate(path, 612, 792)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 1275 || got.Dy() != 1650 {
		t.Errorf("template bounds = %v, want 1275x1650", got)
	}

	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.png"), 612, 792); err == nil {
		t.Error("LoadTemplate(missing) error = nil")
	}
}
