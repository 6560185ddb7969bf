package imaging

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// PixelSample describes one pixel of a stored image.
//
// RGB carries the raw channels on the image's own scale. Hex and HSL are
// computed from the channels normalised by the image max value, so they are
// comparable across images with different max values.
type PixelSample struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	RGB      Pixel    `json:"rgb"`
	MaxValue int      `json:"max_value"`
	Hex      string   `json:"hex"` // "#RRGGBB"
	HSL      HSLColor `json:"hsl"`
}

// SamplePixel returns the pixel at (row, col) in several representations.
//
// # Errors
//
//   - ErrInvalidArgument if (row, col) lies outside the image.
func SamplePixel(img *Image, row, col int) (*PixelSample, error) {
	p, err := img.At(row, col)
	if err != nil {
		return nil, fmt.Errorf("sample pixel: %w", err)
	}

	c := img.normalized(p)
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &PixelSample{
		Row:      row,
		Col:      col,
		RGB:      p,
		MaxValue: img.maxValue,
		Hex:      strings.ToUpper(c.Clamped().Hex()),
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
	}, nil
}

// normalized maps a pixel onto the [0,1] channel range used by go-colorful.
func (img *Image) normalized(p Pixel) colorful.Color {
	if img.maxValue == 0 {
		return colorful.Color{}
	}
	m := float64(img.maxValue)
	return colorful.Color{R: float64(p.R) / m, G: float64(p.G) / m, B: float64(p.B) / m}
}
