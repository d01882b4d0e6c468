package render

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// TemplateDPI is the resolution backgrounds are resampled to.
const TemplateDPI = 150

// LoadTemplate opens a background image and crops it to the aspect of a
// width×height point page. An empty path means no background.
func LoadTemplate(path string, width, height float64) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open template %q: %w", path, err)
	}
	w, h := pixels(width), pixels(height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("template %q: bad page size %gx%g", path, width, height)
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
}

func pixels(points float64) int {
	return int(math.Round(points * TemplateDPI / 72))
}
