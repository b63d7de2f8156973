package frame

import (
	"errors"
	"image/color"

	"github.com/webptools/webp-frame-mcp/internal/codec"
)

// Capability identifies one facet of the frame contract a host may query.
type Capability int

const (
	// CapObject is base object identity; every frame supports it.
	CapObject Capability = iota

	// CapFrameDecode is the decoded-frame surface: size, pixel format,
	// resolution and the stub accessors.
	CapFrameDecode

	// CapBitmapSource is the pixel-copy surface. Only frames backed by a
	// real decoded image support it.
	CapBitmapSource
)

// String returns the capability's wire name.
func (c Capability) String() string {
	switch c {
	case CapObject:
		return "object"
	case CapFrameDecode:
		return "frame-decode"
	case CapBitmapSource:
		return "bitmap-source"
	default:
		return "unknown"
	}
}

// PixelFormat32bppRGBA is the only pixel format a frame ever reports:
// 32 bits per pixel, packed R, G, B, A order with alpha, 8 bits per channel.
const PixelFormat32bppRGBA = "32bppRGBA"

// Frames report a fixed square-pixel resolution rather than deriving one
// from the image.
const defaultDPI = 96.0

// Stable answers for the capabilities no frame provides.
var (
	ErrPaletteUnavailable   = errors.New("frame: palette unavailable")
	ErrUnsupportedOperation = errors.New("frame: operation not supported")
	ErrNoThumbnail          = errors.New("frame: frame is not a thumbnail source")
)

// ColorContext is an opaque color-management context. Frames never return
// any; the type exists so the contract's shape survives.
type ColorContext struct{}

// Frame is the host-facing view of one still image.
type Frame interface {
	// Supports reports whether the frame implements the given capability.
	Supports(c Capability) bool

	// Size returns the frame dimensions in pixels.
	Size() (width, height int)

	// PixelFormat returns the packed pixel layout, always
	// PixelFormat32bppRGBA.
	PixelFormat() string

	// Resolution returns the fixed DPI pair.
	Resolution() (dpiX, dpiY float64)

	// CopyPalette always fails with ErrPaletteUnavailable; frames are
	// direct-color only.
	CopyPalette() (color.Palette, error)

	// Metadata always fails with ErrUnsupportedOperation.
	Metadata() (map[string]string, error)

	// Thumbnail always fails with ErrNoThumbnail.
	Thumbnail() (Frame, error)

	// ColorContexts returns the embedded color contexts, always none.
	ColorContexts() ([]ColorContext, error)

	// CopyPixels copies a sub-rectangle into dest with the semantics of
	// codec.DecodedImage.CopyPixels.
	CopyPixels(r *codec.Region, destStride int, dest []byte) error
}

// ImageFrame is a Frame backed by a real decoded image.
type ImageFrame struct {
	img *codec.DecodedImage
}

// Open decodes data and wraps the result in an ImageFrame. Decode failures
// pass through unchanged from codec.Decode.
func Open(data []byte, opts ...*codec.Options) (*ImageFrame, error) {
	img, err := codec.Decode(data, opts...)
	if err != nil {
		return nil, err
	}
	return &ImageFrame{img: img}, nil
}

// NewImageFrame wraps an already decoded image.
func NewImageFrame(img *codec.DecodedImage) (*ImageFrame, error) {
	if img == nil {
		return nil, codec.ErrInvalidArgument
	}
	return &ImageFrame{img: img}, nil
}

// Image returns the underlying decoded image.
func (f *ImageFrame) Image() *codec.DecodedImage {
	return f.img
}

// Supports reports true exactly for the object, frame-decode and
// bitmap-source capabilities.
func (f *ImageFrame) Supports(c Capability) bool {
	switch c {
	case CapObject, CapFrameDecode, CapBitmapSource:
		return true
	default:
		return false
	}
}

// Size returns the decoded image dimensions.
func (f *ImageFrame) Size() (width, height int) {
	return f.img.Width(), f.img.Height()
}

// PixelFormat implements Frame.
func (f *ImageFrame) PixelFormat() string {
	return PixelFormat32bppRGBA
}

// Resolution implements Frame.
func (f *ImageFrame) Resolution() (dpiX, dpiY float64) {
	return defaultDPI, defaultDPI
}

// CopyPalette implements Frame.
func (f *ImageFrame) CopyPalette() (color.Palette, error) {
	return nil, ErrPaletteUnavailable
}

// Metadata implements Frame.
func (f *ImageFrame) Metadata() (map[string]string, error) {
	return nil, ErrUnsupportedOperation
}

// Thumbnail implements Frame.
func (f *ImageFrame) Thumbnail() (Frame, error) {
	return nil, ErrNoThumbnail
}

// ColorContexts implements Frame.
func (f *ImageFrame) ColorContexts() ([]ColorContext, error) {
	return nil, nil
}

// CopyPixels implements Frame by delegating to the decoded image.
func (f *ImageFrame) CopyPixels(r *codec.Region, destStride int, dest []byte) error {
	return f.img.CopyPixels(r, destStride, dest)
}

// PlaceholderFrame is the dummy frame variant: a frame object with no image
// behind it. It supports object identity and the frame-decode surface but
// not the bitmap-source capability, and its pixel surface always fails.
type PlaceholderFrame struct{}

// Supports reports true for the object and frame-decode capabilities only.
func (PlaceholderFrame) Supports(c Capability) bool {
	switch c {
	case CapObject, CapFrameDecode:
		return true
	default:
		return false
	}
}

// Size implements Frame; a placeholder has no pixels.
func (PlaceholderFrame) Size() (width, height int) {
	return 0, 0
}

// PixelFormat implements Frame.
func (PlaceholderFrame) PixelFormat() string {
	return PixelFormat32bppRGBA
}

// Resolution implements Frame.
func (PlaceholderFrame) Resolution() (dpiX, dpiY float64) {
	return defaultDPI, defaultDPI
}

// CopyPalette implements Frame.
func (PlaceholderFrame) CopyPalette() (color.Palette, error) {
	return nil, ErrPaletteUnavailable
}

// Metadata implements Frame.
func (PlaceholderFrame) Metadata() (map[string]string, error) {
	return nil, ErrUnsupportedOperation
}

// Thumbnail implements Frame.
func (PlaceholderFrame) Thumbnail() (Frame, error) {
	return nil, ErrNoThumbnail
}

// ColorContexts implements Frame.
func (PlaceholderFrame) ColorContexts() ([]ColorContext, error) {
	return nil, nil
}

// CopyPixels implements Frame; a placeholder has no pixel surface.
func (PlaceholderFrame) CopyPixels(r *codec.Region, destStride int, dest []byte) error {
	return ErrUnsupportedOperation
}
