// Package imaging implements the image transformation engine.
//
// The package holds an immutable pixel model, a named image Store and a
// fixed catalogue of transforms that turn one stored image into a new one.
// Inputs are never modified: every transform allocates its own output.
//
// # Coordinate System
//
// Pixels are addressed as (row, col), 0-based, with (0,0) at the top-left:
//   - row: 0 to height-1, increasing downward
//   - col: 0 to width-1, increasing rightward
//
// # Data Model
//
//   - Pixel: an RGB triple of non-negative ints.
//   - Image: width, height, max-channel-value and a row-major pixel grid.
//     NewImage rejects grids whose shape or channel values break these
//     invariants.
//   - Store: name to Image, last write wins.
//
// # Transforms
//
// Operations are values of a closed set of types implementing Operation:
//   - Flip: horizontal or vertical mirror
//   - Brighten: add a signed strength, saturating at 0 and the max value
//   - Greyscale: red, green, blue, value, intensity or luma component
//   - Filter: blur (3x3) or sharpen (5x5) convolution, zero outside bounds
//   - ColorTransform: greyscale or sepia colour matrix
//   - Downscale: bilinear shrink by width and height factors in (0, 1]
//
// Apply runs an operation on an Image. Processor runs it against a Store
// by name.
//
// # Analysis
//
// SamplePixel reads one pixel in RGB, hex and HSL form. Histogram counts
// the red, green, blue and intensity values of a whole image.
//
// # Mask Gating
//
// Brighten, Greyscale, Filter and ColorTransform accept an optional Mask of
// the same size as the source. Where the mask's red channel is below
// MaskThreshold (200) the transformed pixel is written; elsewhere the
// source pixel is copied. A zero-size mask gates nothing.
//
// # Error Handling
//
// Every error wraps one of ErrInvalidArgument, ErrNotFound,
// ErrDimensionMismatch or ErrConstruction and names the failed operation.
// All checks run before pixel work starts, so a failing call never produces
// a partial image. Channel arithmetic itself saturates and never fails.
//
// # Thread Safety
//
// Store is safe for concurrent use. Images are immutable, and transforms
// are pure functions, so they can run concurrently on the same image.
package imaging
