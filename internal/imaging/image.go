package imaging

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxValue is the max-channel-value of 8-bit images.
const DefaultMaxValue = 255

// Image is an immutable rectangular grid of pixels.
//
// Pixels are stored row-major in a single slice. Nothing outside this file
// writes to that slice after construction: NewImage copies its input and
// Pixels returns a copy, so a stored Image cannot be changed through an
// aliased reference.
type Image struct {
	width    int
	height   int
	maxValue int
	pixels   []Pixel
}

// NewImage builds an image from a height x width grid of pixels.
//
// Parameters:
//   - width, height: dimensions in pixels, both must be positive.
//   - maxValue: the declared channel bound, must not be negative.
//   - grid: height rows of width pixels each. The grid is copied.
//
// # Errors
//
//   - ErrInvalidArgument if width or height is not positive, maxValue is
//     negative, or grid is nil.
//   - ErrConstruction if the grid shape differs from (height, width) or any
//     channel is negative or greater than maxValue.
func NewImage(width, height, maxValue int, grid [][]Pixel) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new image: dimensions %dx%d must be positive: %w", width, height, ErrInvalidArgument)
	}
	if maxValue < 0 {
		return nil, fmt.Errorf("new image: max value %d must not be negative: %w", maxValue, ErrInvalidArgument)
	}
	if grid == nil {
		return nil, fmt.Errorf("new image: pixel grid is nil: %w", ErrInvalidArgument)
	}
	if len(grid) != height {
		return nil, fmt.Errorf("new image: grid has %d rows, want %d: %w", len(grid), height, ErrConstruction)
	}

	pixels := make([]Pixel, 0, width*height)
	for i, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("new image: row %d has %d pixels, want %d: %w", i, len(row), width, ErrConstruction)
		}
		for j, p := range row {
			if err := checkPixel(p, maxValue); err != nil {
				return nil, fmt.Errorf("new image: pixel (%d,%d): %w", i, j, err)
			}
		}
		pixels = append(pixels, row...)
	}

	return &Image{width: width, height: height, maxValue: maxValue, pixels: pixels}, nil
}

// newImageFromSlice wraps a freshly computed row-major slice without copying.
// Callers in this package own the slice and never touch it again.
func newImageFromSlice(width, height, maxValue int, pixels []Pixel) *Image {
	return &Image{width: width, height: height, maxValue: maxValue, pixels: pixels}
}

func checkPixel(p Pixel, maxValue int) error {
	if p.R < 0 || p.G < 0 || p.B < 0 {
		return fmt.Errorf("channels (%d,%d,%d) must not be negative: %w", p.R, p.G, p.B, ErrConstruction)
	}
	if p.ExceedsMax(maxValue) {
		return fmt.Errorf("channels (%d,%d,%d) exceed max value %d: %w", p.R, p.G, p.B, maxValue, ErrConstruction)
	}
	return nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// MaxValue returns the declared max-channel-value.
func (img *Image) MaxValue() int { return img.maxValue }

// At returns the pixel at (row, col). Coordinates outside [0,height) x
// [0,width) are rejected with ErrInvalidArgument.
func (img *Image) At(row, col int) (Pixel, error) {
	if row < 0 || row >= img.height || col < 0 || col >= img.width {
		return Pixel{}, fmt.Errorf("pixel (%d,%d) outside %dx%d image: %w", row, col, img.width, img.height, ErrInvalidArgument)
	}
	return img.pixels[row*img.width+col], nil
}

// at is the unchecked accessor used by the transforms.
func (img *Image) at(row, col int) Pixel {
	return img.pixels[row*img.width+col]
}

// Pixels returns an independent height x width copy of the grid.
func (img *Image) Pixels() [][]Pixel {
	grid := make([][]Pixel, img.height)
	for i := range grid {
		row := make([]Pixel, img.width)
		copy(row, img.pixels[i*img.width:(i+1)*img.width])
		grid[i] = row
	}
	return grid
}

// Body returns the plain-text serialization of the pixel data: the red,
// green and blue channel of every pixel in row-major order, one value per
// line, ending with a newline. The format header is not included.
func (img *Image) Body() string {
	var b strings.Builder
	b.Grow(len(img.pixels) * 12)
	for _, p := range img.pixels {
		b.WriteString(strconv.Itoa(p.R))
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(p.G))
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(p.B))
		b.WriteByte('\n')
	}
	return b.String()
}

// Equal reports whether both images have the same dimensions, max value and
// pixels.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	if img.width != other.width || img.height != other.height || img.maxValue != other.maxValue {
		return false
	}
	for i, p := range img.pixels {
		if other.pixels[i] != p {
			return false
		}
	}
	return true
}

// String returns a short description such as "640x480 (max 255)".
func (img *Image) String() string {
	return fmt.Sprintf("%dx%d (max %d)", img.width, img.height, img.maxValue)
}
