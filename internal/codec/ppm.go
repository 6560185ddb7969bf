package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/image-transform/internal/imaging"
)

// PPMMagic is the header token of the plain-text raster format.
const PPMMagic = "P3"

// DecodePPM reads a plain-text raster: the P3 token, width, height and max
// value, then width*height*3 whitespace separated channel values in
// row-major R,G,B order. Blank lines and lines starting with '#' are
// skipped.
//
// The image is built with imaging.NewImage, so channel values above the
// declared max value are rejected with imaging.ErrConstruction.
func DecodePPM(r io.Reader) (*imaging.Image, error) {
	tokens, err := ppmTokens(r)
	if err != nil {
		return nil, err
	}

	next := 0
	readInt := func(what string) (int, error) {
		if next >= len(tokens) {
			return 0, fmt.Errorf("ppm: missing %s", what)
		}
		tok := tokens[next]
		next++
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("ppm: invalid %s %q: %w", what, tok, err)
		}
		return v, nil
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("ppm: nothing to load")
	}
	if tokens[0] != PPMMagic {
		return nil, fmt.Errorf("ppm: header %q, want %s", tokens[0], PPMMagic)
	}
	next = 1

	width, err := readInt("width")
	if err != nil {
		return nil, err
	}
	height, err := readInt("height")
	if err != nil {
		return nil, err
	}
	maxValue, err := readInt("max value")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ppm: dimensions %dx%d must be positive: %w", width, height, imaging.ErrInvalidArgument)
	}
	// Check the body length before allocating anything sized by the header.
	remaining := len(tokens) - next
	if height > remaining/3 || width > remaining/(3*height) {
		return nil, fmt.Errorf("ppm: missing channel data: header declares %dx%d, %d values left",
			width, height, remaining)
	}

	grid := make([][]imaging.Pixel, height)
	for i := range grid {
		row := make([]imaging.Pixel, width)
		for j := range row {
			var ch [3]int
			for k, name := range [3]string{"red", "green", "blue"} {
				v, err := readInt(fmt.Sprintf("%s channel of pixel (%d,%d)", name, i, j))
				if err != nil {
					return nil, err
				}
				ch[k] = v
			}
			row[j] = imaging.Pixel{R: ch[0], G: ch[1], B: ch[2]}
		}
		grid[i] = row
	}

	img, err := imaging.NewImage(width, height, maxValue, grid)
	if err != nil {
		return nil, fmt.Errorf("ppm: %w", err)
	}
	return img, nil
}

func ppmTokens(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ppm: read failed: %w", err)
	}
	return tokens, nil
}

// EncodePPM writes img in the plain-text raster format: the header
// followed by the image's serialization body.
func EncodePPM(w io.Writer, img *imaging.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", PPMMagic, img.Width(), img.Height(), img.MaxValue()); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}
	if _, err := bw.WriteString(img.Body()); err != nil {
		return fmt.Errorf("ppm: write body: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ppm: flush: %w", err)
	}
	return nil
}
