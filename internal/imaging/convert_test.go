package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 128, B: 64, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	img, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if img.MaxValue() != DefaultMaxValue {
		t.Errorf("max value = %d, want 255", img.MaxValue())
	}
	want := [][]Pixel{{{255, 128, 64}, {1, 2, 3}}}
	if diff := cmp.Diff(want, img.Pixels()); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	img, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if p, _ := img.At(0, 1); p != (Pixel{9, 8, 7}) {
		t.Errorf("At(0,1) = %+v, want {9 8 7}", p)
	}
}

func TestFromImage_Errors(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil source: got %v", err)
	}
	if _, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 3))); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty source: got %v", err)
	}
}

func TestToNRGBA(t *testing.T) {
	img := sampleImage(t)
	dst := img.ToNRGBA()

	if dst.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, want 2x2", dst.Bounds())
	}
	if got := dst.NRGBAAt(1, 0); got != (color.NRGBA{R: 63, G: 66, B: 57, A: 255}) {
		t.Errorf("NRGBAAt(1,0) = %v", got)
	}

	back, err := FromImage(dst)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if !back.Equal(img) {
		t.Error("round trip through NRGBA changed the image")
	}
}

func TestToNRGBA_Rescales(t *testing.T) {
	img, err := NewImage(2, 1, 100, [][]Pixel{{{100, 50, 0}, {1, 2, 3}}})
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	dst := img.ToNRGBA()
	if got := dst.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, G: 127, B: 0, A: 255}) {
		t.Errorf("NRGBAAt(0,0) = %v, want {255 127 0 255}", got)
	}

	black, _ := NewImage(1, 1, 0, [][]Pixel{{{0, 0, 0}}})
	if got := black.ToNRGBA().NRGBAAt(0, 0); got != (color.NRGBA{A: 255}) {
		t.Errorf("max value 0 renders %v, want opaque black", got)
	}
}
