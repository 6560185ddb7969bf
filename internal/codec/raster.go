package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	engine "github.com/ironsheep/image-transform/internal/imaging"
)

// Format identifies how a file is read and written.
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatWebP Format = "webp"
)

// FormatFromPath detects the format from the file extension.
//
//   - ".ppm" -> ppm
//   - ".png" -> png
//   - ".jpg", ".jpeg" -> jpeg
//   - ".gif" -> gif
//   - ".bmp" -> bmp
//   - ".tif", ".tiff" -> tiff
//   - ".webp" -> webp (read only)
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".gif":
		return FormatGIF, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("unsupported image format for %q", path)
	}
}

// Load reads an image file. PPM files go through DecodePPM and keep their
// declared max value; every other format is decoded with EXIF orientation
// applied and produces an image with max value 255.
func Load(path string) (*engine.Image, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == FormatPPM {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		return DecodePPM(f)
	}

	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return engine.FromImage(src)
}

// Save writes img to path in the format implied by the extension.
func Save(path string, img *engine.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatPPM:
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed to create %q: %w", path, createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close %q: %w", path, closeErr)
			}
		}()
		return EncodePPM(f, img)
	case FormatWebP:
		return fmt.Errorf("saving %s images is not supported", format)
	default:
		if err := imaging.Save(img.ToNRGBA(), path, imaging.JPEGQuality(95)); err != nil {
			return fmt.Errorf("failed to save %q: %w", path, err)
		}
		return nil
	}
}
