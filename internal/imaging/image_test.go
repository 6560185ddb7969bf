package imaging

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mustImage builds an image with max value 255 from a grid or fails the test.
func mustImage(t *testing.T, grid [][]Pixel) *Image {
	t.Helper()
	img, err := NewImage(len(grid[0]), len(grid), DefaultMaxValue, grid)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	return img
}

// sampleImage is the 2x2 image used by most transform tests.
func sampleImage(t *testing.T) *Image {
	t.Helper()
	return mustImage(t, [][]Pixel{
		{{96, 102, 107}, {63, 66, 57}},
		{{119, 115, 109}, {104, 96, 88}},
	})
}

// photoImage is a high-contrast 2x2 image used by the filter and mask tests.
func photoImage(t *testing.T) *Image {
	t.Helper()
	return mustImage(t, [][]Pixel{
		{{120, 0, 255}, {255, 255, 255}},
		{{255, 0, 200}, {0, 150, 255}},
	})
}

// uniformImage returns a width x height image with every pixel set to p.
func uniformImage(t *testing.T, width, height int, p Pixel) *Image {
	t.Helper()
	grid := make([][]Pixel, height)
	for i := range grid {
		grid[i] = make([]Pixel, width)
		for j := range grid[i] {
			grid[i][j] = p
		}
	}
	return mustImage(t, grid)
}

func TestNewImage(t *testing.T) {
	img, err := NewImage(2, 1, 100, [][]Pixel{{{1, 2, 3}, {100, 0, 50}}})
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.Width() != 2 || img.Height() != 1 || img.MaxValue() != 100 {
		t.Errorf("got %s, want 2x1 (max 100)", img)
	}
	p, err := img.At(0, 1)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if p != (Pixel{100, 0, 50}) {
		t.Errorf("At(0,1) = %+v, want {100 0 50}", p)
	}
}

func TestNewImage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		maxValue int
		grid     [][]Pixel
		wantErr  error
	}{
		{"zero width", 0, 1, 255, [][]Pixel{{}}, ErrInvalidArgument},
		{"negative height", 1, -1, 255, [][]Pixel{{{}}}, ErrInvalidArgument},
		{"negative max", 1, 1, -1, [][]Pixel{{{}}}, ErrInvalidArgument},
		{"nil grid", 1, 1, 255, nil, ErrInvalidArgument},
		{"too few rows", 1, 2, 255, [][]Pixel{{{}}}, ErrConstruction},
		{"ragged row", 2, 2, 255, [][]Pixel{{{}, {}}, {{}}}, ErrConstruction},
		{"channel over max", 1, 1, 10, [][]Pixel{{{11, 0, 0}}}, ErrConstruction},
		{"negative channel", 1, 1, 10, [][]Pixel{{{0, -1, 0}}}, ErrConstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImage(tt.width, tt.height, tt.maxValue, tt.grid)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewImage_CopiesGrid(t *testing.T) {
	grid := [][]Pixel{{{1, 1, 1}}}
	img, err := NewImage(1, 1, 255, grid)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	grid[0][0] = Pixel{9, 9, 9}

	p, _ := img.At(0, 0)
	if p != (Pixel{1, 1, 1}) {
		t.Errorf("image changed through caller's grid: %+v", p)
	}
}

func TestImage_At_OutOfBounds(t *testing.T) {
	img := sampleImage(t)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := img.At(rc[0], rc[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("At(%d,%d): got %v, want ErrInvalidArgument", rc[0], rc[1], err)
		}
	}
}

func TestImage_Pixels(t *testing.T) {
	img := sampleImage(t)
	grid := img.Pixels()

	want := [][]Pixel{
		{{96, 102, 107}, {63, 66, 57}},
		{{119, 115, 109}, {104, 96, 88}},
	}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Errorf("Pixels mismatch (-want +got):\n%s", diff)
	}

	grid[0][0] = Pixel{}
	if p, _ := img.At(0, 0); p != (Pixel{96, 102, 107}) {
		t.Errorf("image changed through Pixels copy: %+v", p)
	}
}

func TestImage_Body(t *testing.T) {
	img := mustImage(t, [][]Pixel{{{1, 2, 3}, {40, 50, 60}}})
	want := "1\n2\n3\n40\n50\n60\n"
	if got := img.Body(); got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestImage_Equal(t *testing.T) {
	a := sampleImage(t)
	b := sampleImage(t)
	if !a.Equal(b) {
		t.Error("identical images are not equal")
	}

	c := mustImage(t, [][]Pixel{
		{{96, 102, 107}, {63, 66, 57}},
		{{119, 115, 109}, {104, 96, 89}},
	})
	if a.Equal(c) {
		t.Error("images differing in one channel are equal")
	}

	d, _ := NewImage(2, 2, 200, a.Pixels())
	if a.Equal(d) {
		t.Error("images differing in max value are equal")
	}

	var nilImg *Image
	if a.Equal(nilImg) || !nilImg.Equal(nil) {
		t.Error("nil handling in Equal is wrong")
	}
}
