package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage converts a decoded standard library image into an Image with a
// max value of 255. Alpha is discarded; each channel is the 8-bit
// non-premultiplied value.
func FromImage(src image.Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("from image: source is nil: %w", ErrInvalidArgument)
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("from image: empty bounds %v: %w", bounds, ErrInvalidArgument)
	}

	pixels := make([]Pixel, 0, w*h)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			pixels = append(pixels, Pixel{R: int(c.R), G: int(c.G), B: int(c.B)})
		}
	}
	return newImageFromSlice(w, h, DefaultMaxValue, pixels), nil
}

// ToNRGBA renders the image as an opaque *image.NRGBA. Channels are
// rescaled to 8 bits when the max value is not 255; an image whose max
// value is 0 renders black.
func (img *Image) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	for i := 0; i < img.height; i++ {
		for j := 0; j < img.width; j++ {
			p := img.at(i, j)
			dst.SetNRGBA(j, i, color.NRGBA{
				R: img.scale8(p.R),
				G: img.scale8(p.G),
				B: img.scale8(p.B),
				A: 0xff,
			})
		}
	}
	return dst
}

func (img *Image) scale8(v int) uint8 {
	switch img.maxValue {
	case 0:
		return 0
	case DefaultMaxValue:
		return uint8(v)
	default:
		return uint8(v * 255 / img.maxValue)
	}
}
