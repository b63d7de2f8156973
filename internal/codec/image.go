package codec

import (
	"image"
)

// BytesPerPixel is the size of one packed RGBA pixel.
const BytesPerPixel = 4

// DecodedImage is the flat pixel buffer produced by a successful Decode.
//
// The buffer is owned exclusively by the DecodedImage and is immutable for
// its whole lifetime: nothing in this package writes to it after Decode
// returns, which is what makes concurrent CopyPixels calls safe without
// locking.
type DecodedImage struct {
	pix    []byte
	width  int
	height int
	stride int
}

// Width returns the image width in pixels. Always > 0.
func (m *DecodedImage) Width() int {
	return m.width
}

// Height returns the image height in pixels. Always > 0.
func (m *DecodedImage) Height() int {
	return m.height
}

// Stride returns the number of bytes per source row. Always width*4; the
// decoded buffer carries no row padding.
func (m *DecodedImage) Stride() int {
	return m.stride
}

// NRGBA returns a zero-copy view of the pixel buffer as a standard library
// image. The view shares the underlying buffer; callers must treat it as
// read-only.
func (m *DecodedImage) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.pix,
		Stride: m.stride,
		Rect:   image.Rect(0, 0, m.width, m.height),
	}
}
