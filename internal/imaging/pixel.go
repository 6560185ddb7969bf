package imaging

import "fmt"

// Pixel is an RGB triple. Channels are non-negative and bounded by the
// owning Image's max value; the bound is checked by NewImage, not here.
//
// Pixel is a value type: every operation returns a new Pixel and two pixels
// are equal when all three channels are equal.
type Pixel struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// NewPixel returns a pixel with the given channels.
// Negative channels are rejected with ErrInvalidArgument.
func NewPixel(r, g, b int) (Pixel, error) {
	if r < 0 || g < 0 || b < 0 {
		return Pixel{}, fmt.Errorf("pixel (%d,%d,%d): channels must not be negative: %w", r, g, b, ErrInvalidArgument)
	}
	return Pixel{R: r, G: g, B: b}, nil
}

// GreyscaleKind selects which value Pixel.Greyscale replicates into all
// three channels. The zero value is unspecified and rejected.
type GreyscaleKind int

const (
	GreyscaleUnspecified GreyscaleKind = iota
	GreyscaleRed
	GreyscaleGreen
	GreyscaleBlue
	GreyscaleValue
	GreyscaleIntensity
	GreyscaleLuma
)

var greyscaleNames = map[GreyscaleKind]string{
	GreyscaleRed:       "red",
	GreyscaleGreen:     "green",
	GreyscaleBlue:      "blue",
	GreyscaleValue:     "value",
	GreyscaleIntensity: "intensity",
	GreyscaleLuma:      "luma",
}

func (k GreyscaleKind) String() string {
	if name, ok := greyscaleNames[k]; ok {
		return name
	}
	return fmt.Sprintf("GreyscaleKind(%d)", int(k))
}

// ParseGreyscaleKind maps "red", "green", "blue", "value", "intensity" or
// "luma" to its GreyscaleKind.
func ParseGreyscaleKind(s string) (GreyscaleKind, error) {
	for k, name := range greyscaleNames {
		if name == s {
			return k, nil
		}
	}
	return GreyscaleUnspecified, fmt.Errorf("unknown greyscale kind %q: %w", s, ErrInvalidArgument)
}

// ColorTransformKind selects the colour matrix applied by Pixel.ColorTransform.
type ColorTransformKind int

const (
	ColorTransformUnspecified ColorTransformKind = iota
	ColorTransformGreyscale
	ColorTransformSepia
)

func (k ColorTransformKind) String() string {
	switch k {
	case ColorTransformGreyscale:
		return "greyscale"
	case ColorTransformSepia:
		return "sepia"
	default:
		return fmt.Sprintf("ColorTransformKind(%d)", int(k))
	}
}

// ParseColorTransformKind maps "greyscale" or "sepia" to its kind.
func ParseColorTransformKind(s string) (ColorTransformKind, error) {
	switch s {
	case "greyscale":
		return ColorTransformGreyscale, nil
	case "sepia":
		return ColorTransformSepia, nil
	default:
		return ColorTransformUnspecified, fmt.Errorf("unknown color transform %q: %w", s, ErrInvalidArgument)
	}
}

// sepiaMatrix holds the row-major weights of the sepia colour matrix.
var sepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// Brighten adds strength to every channel. Positive strengths saturate at
// maxValue, negative strengths saturate at 0 and zero returns p unchanged.
//
// A maxValue below 1 is rejected with ErrInvalidArgument.
func (p Pixel) Brighten(strength, maxValue int) (Pixel, error) {
	if maxValue < 1 {
		return Pixel{}, fmt.Errorf("brighten: max value %d must be at least 1: %w", maxValue, ErrInvalidArgument)
	}
	switch {
	case strength > 0:
		return Pixel{
			R: min(p.R+strength, maxValue),
			G: min(p.G+strength, maxValue),
			B: min(p.B+strength, maxValue),
		}, nil
	case strength < 0:
		return Pixel{
			R: max(p.R+strength, 0),
			G: max(p.G+strength, 0),
			B: max(p.B+strength, 0),
		}, nil
	default:
		return p, nil
	}
}

// Greyscale replicates a single derived value into all three channels:
//   - Red, Green, Blue: the named channel
//   - Value: the largest channel
//   - Intensity: the truncated mean of the channels
//   - Luma: floor(0.2126R + 0.7152G + 0.0722B)
func (p Pixel) Greyscale(kind GreyscaleKind) (Pixel, error) {
	var v int
	switch kind {
	case GreyscaleRed:
		v = p.R
	case GreyscaleGreen:
		v = p.G
	case GreyscaleBlue:
		v = p.B
	case GreyscaleValue:
		v = max(p.R, p.G, p.B)
	case GreyscaleIntensity:
		v = (p.R + p.G + p.B) / 3
	case GreyscaleLuma:
		v = p.luma()
	default:
		return Pixel{}, fmt.Errorf("greyscale: kind %v: %w", kind, ErrInvalidArgument)
	}
	return Pixel{R: v, G: v, B: v}, nil
}

// ColorTransform applies the greyscale (luma) or sepia colour matrix.
// Sepia channels are truncated and clamped to [0,255]. All three output
// channels are computed from the same input triple.
func (p Pixel) ColorTransform(kind ColorTransformKind) (Pixel, error) {
	switch kind {
	case ColorTransformGreyscale:
		v := p.luma()
		return Pixel{R: v, G: v, B: v}, nil
	case ColorTransformSepia:
		var out [3]int
		for i, row := range sepiaMatrix {
			v := int(float64(p.R)*row[0] + float64(p.G)*row[1] + float64(p.B)*row[2])
			out[i] = clampChannel(v, 255)
		}
		return Pixel{R: out[0], G: out[1], B: out[2]}, nil
	default:
		return Pixel{}, fmt.Errorf("color transform: kind %v: %w", kind, ErrInvalidArgument)
	}
}

// ExceedsMax reports whether any channel is greater than maxValue.
func (p Pixel) ExceedsMax(maxValue int) bool {
	return p.R > maxValue || p.G > maxValue || p.B > maxValue
}

func (p Pixel) luma() int {
	return int(float64(p.R)*0.2126 + float64(p.G)*0.7152 + float64(p.B)*0.0722)
}

// clamp limits every channel to [0, maxValue].
func (p Pixel) clamp(maxValue int) Pixel {
	return Pixel{
		R: clampChannel(p.R, maxValue),
		G: clampChannel(p.G, maxValue),
		B: clampChannel(p.B, maxValue),
	}
}

func clampChannel(v, maxValue int) int {
	if v < 0 {
		return 0
	}
	if v > maxValue {
		return maxValue
	}
	return v
}
