// Package codec reads and writes images for the transformation engine.
//
// Two families of formats are supported:
//   - The plain-text raster format (P3 header, width, height, max value,
//     then whitespace separated R G B values). It keeps an arbitrary max
//     value and round-trips exactly.
//   - Common raster formats (PNG, JPEG, GIF, BMP, TIFF, and WebP for reading),
//     converted to and from 8-bit RGB with max value 255. Alpha is dropped.
//
// Decoded pixels always pass through imaging.NewImage or imaging.FromImage,
// so every loaded image satisfies the engine's invariants.
package codec
