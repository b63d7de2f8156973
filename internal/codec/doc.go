// Package codec turns a compressed still-image bitstream into an immutable
// RGBA pixel buffer and serves rectangular copies out of it.
//
// The package has two halves. Decode runs the external decode primitive once
// and wraps its output in a DecodedImage; it never retries and never keeps a
// partially decoded result. CopyPixels validates a caller-supplied region and
// destination against the image bounds before writing a single byte, then
// performs a row-by-row strided copy into the caller's buffer.
//
// # Pixel Layout
//
// Pixels are packed 4 bytes per pixel in R, G, B, A order, 8 bits per
// channel, non-premultiplied. The row stride is always width*4; the decoded
// buffer carries no padding.
//
// # Coordinate System
//
// Regions are 0-based with the origin at the top-left corner: X grows
// rightward, Y grows downward. A region's width and height count pixels, not
// bytes.
//
// # Thread Safety
//
// A DecodedImage is immutable after Decode returns. CopyPixels performs no
// allocation and no locking and may be called concurrently from any number
// of goroutines against the same image, as long as the image outlives every
// in-flight call.
//
// # Error Handling
//
// All failures are reported through package-level sentinel errors
// (ErrBadImage, ErrInvalidDimensions, ErrInvalidRegion,
// ErrInsufficientBuffer, ErrInvalidArgument). Decode failures are
// deliberately coarse: the decode primitive only reports success or failure,
// so every rejected bitstream maps to ErrBadImage regardless of the internal
// cause. Nothing in this package logs or retries.
package codec
