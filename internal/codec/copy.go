package codec

// Region is a caller-requested axis-aligned sub-rectangle of the image, in
// pixel coordinates. It is a transient request parameter: a Region is only
// meaningful relative to a specific image's bounds and is revalidated on
// every call.
type Region struct {
	X      int `json:"x"`      // Left edge (0-based)
	Y      int `json:"y"`      // Top edge (0-based)
	Width  int `json:"width"`  // Horizontal extent in pixels
	Height int `json:"height"` // Vertical extent in pixels
}

// CopyPixels copies the requested region of the image into dest, one row at
// a time, advancing destStride bytes per row. A nil region means the full
// image. len(dest) is the destination capacity in bytes.
//
// Every validation failure is detected before any byte is written:
//
//   - nil dest: ErrInvalidArgument
//   - negative region fields, region outside the image bounds, destStride
//     too small for one row (or not positive): ErrInvalidRegion
//   - dest too small for region.Height rows: ErrInsufficientBuffer
//
// A region with zero width or height succeeds immediately with zero bytes
// written. CopyPixels allocates nothing and is safe to call concurrently
// against the same image.
func (m *DecodedImage) CopyPixels(r *Region, destStride int, dest []byte) error {
	if dest == nil {
		return ErrInvalidArgument
	}

	region := Region{0, 0, m.width, m.height}
	if r != nil {
		region = *r
	}

	if region.Width < 0 || region.Height < 0 || region.X < 0 || region.Y < 0 {
		return ErrInvalidRegion
	}
	// Rearranged from x+width <= imageWidth: with all fields known
	// non-negative the subtraction cannot wrap, while the addition could
	// for adversarial values.
	if region.Width > m.width-region.X || region.Height > m.height-region.Y {
		return ErrInvalidRegion
	}

	// Divisions instead of multiplications to avoid integer overflows.
	if destStride <= 0 || destStride/BytesPerPixel < region.Width {
		return ErrInvalidRegion
	}
	if len(dest)/destStride < region.Height {
		return ErrInsufficientBuffer
	}

	if region.Width == 0 || region.Height == 0 {
		return nil
	}

	srcOffset := region.Y*m.stride + region.X*BytesPerPixel
	rowLen := region.Width * BytesPerPixel
	destOffset := 0
	for row := 0; row < region.Height; row++ {
		copy(dest[destOffset:destOffset+rowLen], m.pix[srcOffset:srcOffset+rowLen])
		srcOffset += m.stride
		destOffset += destStride
	}

	return nil
}
