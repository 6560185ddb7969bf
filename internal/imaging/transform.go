package imaging

import (
	"fmt"
	"math"
)

// Operation is one entry of the transform catalogue. The set of
// implementations is closed: Flip, Brighten, Greyscale, Filter,
// ColorTransform and Downscale.
type Operation interface {
	// Name is the catalogue name used in error messages and logs.
	Name() string

	// Maskable reports whether the operation accepts a mask.
	Maskable() bool

	validate() error
	apply(src *Image, mask *Mask) *Image
}

// FlipKind selects the flip axis.
type FlipKind int

const (
	FlipUnspecified FlipKind = iota
	FlipHorizontal
	FlipVertical
)

func (k FlipKind) String() string {
	switch k {
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	default:
		return fmt.Sprintf("FlipKind(%d)", int(k))
	}
}

// ParseFlipKind maps "horizontal" or "vertical" to its FlipKind.
func ParseFlipKind(s string) (FlipKind, error) {
	switch s {
	case "horizontal":
		return FlipHorizontal, nil
	case "vertical":
		return FlipVertical, nil
	default:
		return FlipUnspecified, fmt.Errorf("unknown flip kind %q: %w", s, ErrInvalidArgument)
	}
}

// Flip mirrors the image. Horizontal reverses the columns of every row,
// Vertical reverses the row order.
type Flip struct {
	Kind FlipKind
}

func (Flip) Name() string   { return "flip" }
func (Flip) Maskable() bool { return false }

func (op Flip) validate() error {
	if op.Kind != FlipHorizontal && op.Kind != FlipVertical {
		return fmt.Errorf("flip: kind %v: %w", op.Kind, ErrInvalidArgument)
	}
	return nil
}

func (op Flip) apply(src *Image, _ *Mask) *Image {
	w, h := src.width, src.height
	out := make([]Pixel, len(src.pixels))
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if op.Kind == FlipHorizontal {
				out[i*w+j] = src.at(i, w-1-j)
			} else {
				out[i*w+j] = src.at(h-1-i, j)
			}
		}
	}
	return newImageFromSlice(w, h, src.maxValue, out)
}

// Brighten adds Strength to every channel, saturating at 0 and at the image
// max value.
type Brighten struct {
	Strength int
}

func (Brighten) Name() string   { return "brighten" }
func (Brighten) Maskable() bool { return true }

func (Brighten) validate() error { return nil }

func (op Brighten) apply(src *Image, mask *Mask) *Image {
	maxValue := src.maxValue
	return mapPixels(src, mask, func(p Pixel) Pixel {
		if maxValue < 1 {
			// Only black fits an image whose max value is 0.
			return p
		}
		out, _ := p.Brighten(op.Strength, maxValue)
		return out
	})
}

// Greyscale replicates a single component, value, intensity or luma into
// all three channels.
type Greyscale struct {
	Kind GreyscaleKind
}

func (Greyscale) Name() string   { return "greyscale" }
func (Greyscale) Maskable() bool { return true }

func (op Greyscale) validate() error {
	if _, ok := greyscaleNames[op.Kind]; !ok {
		return fmt.Errorf("greyscale: kind %v: %w", op.Kind, ErrInvalidArgument)
	}
	return nil
}

func (op Greyscale) apply(src *Image, mask *Mask) *Image {
	return mapPixels(src, mask, func(p Pixel) Pixel {
		out, _ := p.Greyscale(op.Kind)
		return out.clamp(src.maxValue)
	})
}

// ColorTransform applies the greyscale or sepia colour matrix.
type ColorTransform struct {
	Kind ColorTransformKind
}

func (ColorTransform) Name() string   { return "color-transform" }
func (ColorTransform) Maskable() bool { return true }

func (op ColorTransform) validate() error {
	if op.Kind != ColorTransformGreyscale && op.Kind != ColorTransformSepia {
		return fmt.Errorf("color transform: kind %v: %w", op.Kind, ErrInvalidArgument)
	}
	return nil
}

func (op ColorTransform) apply(src *Image, mask *Mask) *Image {
	return mapPixels(src, mask, func(p Pixel) Pixel {
		out, _ := p.ColorTransform(op.Kind)
		return out.clamp(src.maxValue)
	})
}

// Downscale shrinks the image by independent width and height factors in
// (0, 1], sampling the source with bilinear interpolation.
type Downscale struct {
	WidthFactor  float64
	HeightFactor float64
}

func (Downscale) Name() string   { return "downscale" }
func (Downscale) Maskable() bool { return false }

func (op Downscale) validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{{"width", op.WidthFactor}, {"height", op.HeightFactor}} {
		if math.IsNaN(f.value) || f.value <= 0 || f.value > 1 {
			return fmt.Errorf("downscale: %s factor %v must be in (0, 1]: %w", f.name, f.value, ErrInvalidArgument)
		}
	}
	return nil
}

// mapPixels applies fn to every pixel the mask lets through and copies the
// rest unchanged.
func mapPixels(src *Image, mask *Mask, fn func(Pixel) Pixel) *Image {
	w, h := src.width, src.height
	out := make([]Pixel, len(src.pixels))
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			p := src.at(i, j)
			if mask.Transforms(i, j) {
				p = fn(p)
			}
			out[i*w+j] = p
		}
	}
	return newImageFromSlice(w, h, src.maxValue, out)
}

// Apply runs op over src and returns a new image. The source is never
// modified.
//
// Parameters:
//   - src: the source image. Must not be nil.
//   - op: the operation to run.
//   - mask: optional gate. Nil or zero-size masks transform every pixel.
//     Only Brighten, Greyscale, Filter and ColorTransform accept a non-empty
//     mask.
//
// # Errors
//
// All checks happen before any pixel is computed:
//   - ErrInvalidArgument for a nil source, a nil operation, an invalid
//     parameter, a mask passed to a non-maskable operation, or a downscale
//     whose result would have no pixels.
//   - ErrDimensionMismatch when a non-empty mask differs in size from src.
func Apply(src *Image, op Operation, mask *Mask) (*Image, error) {
	if op == nil {
		return nil, fmt.Errorf("apply: operation is nil: %w", ErrInvalidArgument)
	}
	if src == nil {
		return nil, fmt.Errorf("%s: source image is nil: %w", op.Name(), ErrInvalidArgument)
	}
	if err := op.validate(); err != nil {
		return nil, err
	}
	if !mask.Empty() && !op.Maskable() {
		return nil, fmt.Errorf("%s: operation does not accept a mask: %w", op.Name(), ErrInvalidArgument)
	}
	if err := mask.check(op.Name(), src); err != nil {
		return nil, err
	}
	if ds, ok := op.(Downscale); ok {
		w, h := ds.size(src)
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("downscale: %dx%d image scaled by (%v, %v) has no pixels: %w",
				src.width, src.height, ds.WidthFactor, ds.HeightFactor, ErrInvalidArgument)
		}
	}
	return op.apply(src, mask), nil
}
