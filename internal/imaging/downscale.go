package imaging

import "math"

// size returns the destination dimensions floor(W*fw) x floor(H*fh).
func (op Downscale) size(src *Image) (width, height int) {
	width = int(math.Floor(float64(src.width) * op.WidthFactor))
	height = int(math.Floor(float64(src.height) * op.HeightFactor))
	return width, height
}

func (op Downscale) apply(src *Image, _ *Mask) *Image {
	w, h := op.size(src)
	rowStep := 1.0 / op.HeightFactor
	colStep := 1.0 / op.WidthFactor

	out := make([]Pixel, 0, w*h)
	for i := 0; i < h; i++ {
		row := float64(i) * rowStep
		for j := 0; j < w; j++ {
			col := float64(j) * colStep
			out = append(out, bilinear(src, row, col))
		}
	}
	return newImageFromSlice(w, h, src.maxValue, out)
}

// bilinear samples src at the continuous coordinate (row, col). The four
// neighbours sit at the floor of each coordinate and one past it; a
// neighbour past the last row or column is replaced by the nearest in-bounds
// pixel. Channels are interpolated independently, truncated and clamped to
// the image max value.
func bilinear(src *Image, row, col float64) Pixel {
	r0 := int(math.Floor(row))
	c0 := int(math.Floor(col))
	r0 = min(max(r0, 0), src.height-1)
	c0 = min(max(c0, 0), src.width-1)
	r1 := min(r0+1, src.height-1)
	c1 := min(c0+1, src.width-1)

	fr, fc := math.Floor(row), math.Floor(col)
	dr, rr := row-fr, (fr+1)-row
	dc, rc := col-fc, (fc+1)-col

	p1 := src.at(r0, c0)
	p2 := src.at(r1, c0)
	p3 := src.at(r0, c1)
	p4 := src.at(r1, c1)

	lerp := func(a, b, c, d int) int {
		left := float64(b)*dr + float64(a)*rr
		right := float64(d)*dr + float64(c)*rr
		return clampChannel(int(right*dc+left*rc), src.maxValue)
	}

	return Pixel{
		R: lerp(p1.R, p2.R, p3.R, p4.R),
		G: lerp(p1.G, p2.G, p3.G, p4.G),
		B: lerp(p1.B, p2.B, p3.B, p4.B),
	}
}
