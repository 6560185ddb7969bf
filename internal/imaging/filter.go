package imaging

import "fmt"

// FilterKind selects the convolution kernel applied by Filter.
type FilterKind int

const (
	FilterUnspecified FilterKind = iota
	FilterBlur
	FilterSharpen
)

func (k FilterKind) String() string {
	switch k {
	case FilterBlur:
		return "blur"
	case FilterSharpen:
		return "sharpen"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// ParseFilterKind maps "blur" or "sharpen" to its FilterKind.
func ParseFilterKind(s string) (FilterKind, error) {
	switch s {
	case "blur":
		return FilterBlur, nil
	case "sharpen":
		return FilterSharpen, nil
	default:
		return FilterUnspecified, fmt.Errorf("unknown filter %q: %w", s, ErrInvalidArgument)
	}
}

// Kernels are stored as divisors rather than weights. Every tap divides the
// neighbour's channel by its divisor with integer (truncating) division and
// the quotients are summed, so a divisor of -8 subtracts an eighth.
//
// Blur (3x3):
//
//	16  8 16
//	 8  4  8
//	16  8 16
//
// Sharpen (5x5):
//
//	-8 -8 -8 -8 -8
//	-8  4  4  4 -8
//	-8  4  1  4 -8
//	-8  4  4  4 -8
//	-8 -8 -8 -8 -8
var (
	blurDivisors = [][]int{
		{16, 8, 16},
		{8, 4, 8},
		{16, 8, 16},
	}
	sharpenDivisors = [][]int{
		{-8, -8, -8, -8, -8},
		{-8, 4, 4, 4, -8},
		{-8, 4, 1, 4, -8},
		{-8, 4, 4, 4, -8},
		{-8, -8, -8, -8, -8},
	}
)

// Filter blurs or sharpens the image by convolving each channel with a
// fixed kernel. Taps that fall outside the image contribute zero; results
// are clamped to [0,255] and to the image max value.
type Filter struct {
	Kind FilterKind
}

func (Filter) Name() string   { return "filter" }
func (Filter) Maskable() bool { return true }

func (op Filter) validate() error {
	if op.divisors() == nil {
		return fmt.Errorf("filter: kind %v: %w", op.Kind, ErrInvalidArgument)
	}
	return nil
}

func (op Filter) divisors() [][]int {
	switch op.Kind {
	case FilterBlur:
		return blurDivisors
	case FilterSharpen:
		return sharpenDivisors
	default:
		return nil
	}
}

func (op Filter) apply(src *Image, mask *Mask) *Image {
	kernel := op.divisors()
	limit := min(255, src.maxValue)
	w, h := src.width, src.height

	out := make([]Pixel, len(src.pixels))
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if !mask.Transforms(i, j) {
				out[i*w+j] = src.at(i, j)
				continue
			}
			out[i*w+j] = convolve(src, i, j, kernel).clamp(limit)
		}
	}
	return newImageFromSlice(w, h, src.maxValue, out)
}

// convolve computes the unclamped kernel sum centred on (row, col).
func convolve(src *Image, row, col int, kernel [][]int) Pixel {
	radius := len(kernel) / 2
	var sum Pixel
	for ky, divisors := range kernel {
		y := row + ky - radius
		if y < 0 || y >= src.height {
			continue
		}
		for kx, d := range divisors {
			x := col + kx - radius
			if x < 0 || x >= src.width {
				continue
			}
			p := src.at(y, x)
			sum.R += p.R / d
			sum.G += p.G / d
			sum.B += p.B / d
		}
	}
	return sum
}
