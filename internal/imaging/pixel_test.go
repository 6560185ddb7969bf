package imaging

import (
	"errors"
	"testing"
)

func TestNewPixel(t *testing.T) {
	p, err := NewPixel(1, 2, 3)
	if err != nil {
		t.Fatalf("NewPixel failed: %v", err)
	}
	if p != (Pixel{R: 1, G: 2, B: 3}) {
		t.Errorf("got %+v, want {1 2 3}", p)
	}

	for _, tt := range []struct{ r, g, b int }{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}} {
		if _, err := NewPixel(tt.r, tt.g, tt.b); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewPixel(%d,%d,%d): got %v, want ErrInvalidArgument", tt.r, tt.g, tt.b, err)
		}
	}
}

func TestPixel_Brighten(t *testing.T) {
	tests := []struct {
		name     string
		pixel    Pixel
		strength int
		maxValue int
		want     Pixel
	}{
		{"brighten", Pixel{96, 102, 107}, 50, 255, Pixel{146, 152, 157}},
		{"brighten saturates", Pixel{120, 0, 255}, 100, 255, Pixel{220, 100, 255}},
		{"darken", Pixel{96, 102, 107}, -50, 255, Pixel{46, 52, 57}},
		{"darken saturates", Pixel{10, 60, 0}, -50, 255, Pixel{0, 10, 0}},
		{"zero is identity", Pixel{1, 2, 3}, 0, 255, Pixel{1, 2, 3}},
		{"small max value", Pixel{5, 6, 7}, 10, 9, Pixel{9, 9, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pixel.Brighten(tt.strength, tt.maxValue)
			if err != nil {
				t.Fatalf("Brighten failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPixel_Brighten_InvalidMaxValue(t *testing.T) {
	if _, err := (Pixel{}).Brighten(10, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestPixel_Brighten_InverseBound(t *testing.T) {
	pixels := []Pixel{{0, 0, 0}, {10, 128, 250}, {255, 255, 255}, {96, 102, 107}}
	for _, p := range pixels {
		for _, s := range []int{-300, -40, -1, 1, 40, 300} {
			up, _ := p.Brighten(s, 255)
			back, _ := up.Brighten(-s, 255)

			saturated := up.R == 0 || up.R == 255 || up.G == 0 || up.G == 255 || up.B == 0 || up.B == 255
			if !saturated && back != p {
				t.Errorf("%+v brighten %d and back: got %+v", p, s, back)
			}
			for _, d := range []int{back.R - p.R, back.G - p.G, back.B - p.B} {
				if d < -abs(s) || d > abs(s) {
					t.Errorf("%+v brighten %d and back drifted by %d", p, s, d)
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestPixel_Greyscale(t *testing.T) {
	p := Pixel{120, 0, 255}
	tests := []struct {
		kind GreyscaleKind
		want int
	}{
		{GreyscaleRed, 120},
		{GreyscaleGreen, 0},
		{GreyscaleBlue, 255},
		{GreyscaleValue, 255},
		{GreyscaleIntensity, 125},
		{GreyscaleLuma, 43},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := p.Greyscale(tt.kind)
			if err != nil {
				t.Fatalf("Greyscale failed: %v", err)
			}
			if got != (Pixel{tt.want, tt.want, tt.want}) {
				t.Errorf("got %+v, want all channels %d", got, tt.want)
			}
		})
	}
}

func TestPixel_Greyscale_Luma(t *testing.T) {
	got, _ := Pixel{96, 102, 107}.Greyscale(GreyscaleLuma)
	if got.R != 101 {
		t.Errorf("luma: got %d, want 101", got.R)
	}
}

func TestPixel_Greyscale_Unspecified(t *testing.T) {
	if _, err := (Pixel{1, 2, 3}).Greyscale(GreyscaleUnspecified); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
	if _, err := (Pixel{1, 2, 3}).Greyscale(GreyscaleKind(42)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestPixel_ColorTransform(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
		kind  ColorTransformKind
		want  Pixel
	}{
		{"greyscale", Pixel{120, 0, 255}, ColorTransformGreyscale, Pixel{43, 43, 43}},
		{"sepia", Pixel{120, 0, 255}, ColorTransformSepia, Pixel{95, 84, 66}},
		{"sepia clamps", Pixel{255, 255, 255}, ColorTransformSepia, Pixel{255, 255, 238}},
		{"sepia black", Pixel{0, 0, 0}, ColorTransformSepia, Pixel{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pixel.ColorTransform(tt.kind)
			if err != nil {
				t.Fatalf("ColorTransform failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := (Pixel{}).ColorTransform(ColorTransformUnspecified); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unspecified kind: got %v, want ErrInvalidArgument", err)
	}
}

func TestPixel_ExceedsMax(t *testing.T) {
	p := Pixel{10, 20, 30}
	if p.ExceedsMax(30) {
		t.Error("ExceedsMax(30) = true, want false")
	}
	if !p.ExceedsMax(29) {
		t.Error("ExceedsMax(29) = false, want true")
	}
}

func TestParseKinds(t *testing.T) {
	for kind, name := range greyscaleNames {
		got, err := ParseGreyscaleKind(name)
		if err != nil || got != kind {
			t.Errorf("ParseGreyscaleKind(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseGreyscaleKind("purple"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseGreyscaleKind(purple): got %v", err)
	}
	if k, err := ParseColorTransformKind("sepia"); err != nil || k != ColorTransformSepia {
		t.Errorf("ParseColorTransformKind(sepia) = %v, %v", k, err)
	}
	if _, err := ParseColorTransformKind("negative"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseColorTransformKind(negative): got %v", err)
	}
	if k, err := ParseFilterKind("sharpen"); err != nil || k != FilterSharpen {
		t.Errorf("ParseFilterKind(sharpen) = %v, %v", k, err)
	}
	if k, err := ParseFlipKind("vertical"); err != nil || k != FlipVertical {
		t.Errorf("ParseFlipKind(vertical) = %v, %v", k, err)
	}
	if _, err := ParseFlipKind("diagonal"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseFlipKind(diagonal): got %v", err)
	}
}
