package imaging

import "fmt"

// MaskThreshold is the red-channel level at and above which a mask pixel
// protects the source pixel from a transform.
const MaskThreshold = 200

// Mask gates a transform pixel by pixel. Where the mask's red channel is
// below MaskThreshold the transformed pixel is written; elsewhere the source
// pixel is kept. A zero-size mask gates nothing.
type Mask struct {
	width  int
	height int
	red    []int
}

// NewMask derives a mask from an image. A nil image yields a zero-size mask.
func NewMask(img *Image) *Mask {
	if img == nil {
		return &Mask{}
	}
	red := make([]int, len(img.pixels))
	for i, p := range img.pixels {
		red[i] = p.R
	}
	return &Mask{width: img.width, height: img.height, red: red}
}

// MaskFromGrid derives a mask from a raw pixel grid. A nil or empty grid
// yields a zero-size mask. Ragged grids are rejected with
// ErrDimensionMismatch.
func MaskFromGrid(grid [][]Pixel) (*Mask, error) {
	if len(grid) == 0 {
		return &Mask{}, nil
	}
	width := len(grid[0])
	red := make([]int, 0, width*len(grid))
	for i, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("mask row %d has %d pixels, want %d: %w", i, len(row), width, ErrDimensionMismatch)
		}
		for _, p := range row {
			red = append(red, p.R)
		}
	}
	if width == 0 {
		return &Mask{}, nil
	}
	return &Mask{width: width, height: len(grid), red: red}, nil
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Empty reports whether the mask has zero size.
func (m *Mask) Empty() bool {
	return m == nil || len(m.red) == 0
}

// Transforms reports whether the pixel at (row, col) should take the
// transformed value.
func (m *Mask) Transforms(row, col int) bool {
	if m.Empty() {
		return true
	}
	return m.red[row*m.width+col] < MaskThreshold
}

// check verifies that a non-empty mask covers exactly the source image.
func (m *Mask) check(op string, src *Image) error {
	if m.Empty() {
		return nil
	}
	if m.width != src.width || m.height != src.height {
		return fmt.Errorf("%s: mask is %dx%d, image is %dx%d: %w",
			op, m.width, m.height, src.width, src.height, ErrDimensionMismatch)
	}
	return nil
}
