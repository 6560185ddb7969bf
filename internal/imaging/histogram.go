package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/histogram"
)

// maxHistogramValue bounds the number of bins per channel. It is the largest
// max value the plain-text raster format allows.
const maxHistogramValue = 65535

// HistogramCounts holds per-channel value counts of an image. Every slice
// has MaxValue+1 bins; bin v counts the pixels whose channel equals v.
// Intensity bins the mean (R+G+B)/3 of each pixel, truncated.
type HistogramCounts struct {
	MaxValue  int   `json:"max_value"`
	Red       []int `json:"red"`
	Green     []int `json:"green"`
	Blue      []int `json:"blue"`
	Intensity []int `json:"intensity"`
}

// Histogram counts the red, green, blue and intensity values of img over
// [0, img.MaxValue()]. 8-bit images are counted by bild's RGBA histogram.
//
// # Errors
//
//   - ErrInvalidArgument if the max value is above 65535.
func Histogram(img *Image) (*HistogramCounts, error) {
	if img.maxValue > maxHistogramValue {
		return nil, fmt.Errorf("histogram: max value %d above %d: %w", img.maxValue, maxHistogramValue, ErrInvalidArgument)
	}

	bins := img.maxValue + 1
	h := &HistogramCounts{
		MaxValue:  img.maxValue,
		Intensity: make([]int, bins),
	}
	for _, p := range img.pixels {
		h.Intensity[(p.R+p.G+p.B)/3]++
	}

	if img.maxValue == DefaultMaxValue {
		rgba := histogram.NewRGBAHistogram(img.ToNRGBA())
		h.Red, h.Green, h.Blue = rgba.R.Bins, rgba.G.Bins, rgba.B.Bins
		return h, nil
	}

	h.Red, h.Green, h.Blue = make([]int, bins), make([]int, bins), make([]int, bins)
	for _, p := range img.pixels {
		h.Red[p.R]++
		h.Green[p.G]++
		h.Blue[p.B]++
	}
	return h, nil
}

// Peak returns the most frequent value of bins and its count. Ties go to
// the lower value.
func Peak(bins []int) (value, count int) {
	for v, n := range bins {
		if n > count {
			value, count = v, n
		}
	}
	return value, count
}
