package codec

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Standard error types for decoding and pixel access.
var (
	// ErrBadImage means the compressed input could not be decoded. The
	// decode primitive reports failure without a cause, so truncated
	// streams, corrupt headers and unsupported variants all land here.
	ErrBadImage = errors.New("codec: cannot decode image data")

	// ErrInvalidDimensions means the decode primitive violated its
	// contract: it produced a buffer but reported a nonsensical size.
	ErrInvalidDimensions = errors.New("codec: decoder reported invalid dimensions")

	// ErrOutOfMemory means an allocation failed while wrapping the decoded
	// buffer.
	ErrOutOfMemory = errors.New("codec: out of memory")

	// ErrInvalidRegion means a region request was malformed, out of the
	// image bounds, or paired with an unusable destination stride.
	ErrInvalidRegion = errors.New("codec: invalid region")

	// ErrInsufficientBuffer means the request was well formed but the
	// destination buffer cannot hold the requested rows.
	ErrInsufficientBuffer = errors.New("codec: destination buffer too small")

	// ErrInvalidArgument means a required pointer argument was nil.
	ErrInvalidArgument = errors.New("codec: invalid argument")
)

// DecodeFunc is the external decode primitive. It takes a compressed
// bitstream and returns a packed 4-bytes-per-pixel buffer plus its
// dimensions, or a nil buffer to signal failure. The primitive's internal
// algorithm is outside this package's contract.
type DecodeFunc func(data []byte) (pix []byte, width, height int)

// Options specifies decoding parameters.
type Options struct {
	// Decoder overrides the decode primitive. If nil, DefaultDecode is
	// used.
	Decoder DecodeFunc

	// TimingHook, if non-nil, receives the wall-clock duration of the
	// decode primitive call. Purely observational; it must not block.
	TimingHook func(time.Duration)
}

// Decode runs the decode primitive exactly once over data and wraps the
// result in an immutable DecodedImage.
//
// A failed decode returns ErrBadImage and leaves no decoded state behind.
// A primitive that returns a buffer with a non-positive width or height, or
// a buffer shorter than stride*height, has violated its contract; the buffer
// is discarded and Decode returns ErrInvalidDimensions. There is no partial
// success and the same input is never decoded twice by one call.
func Decode(data []byte, opts ...*Options) (*DecodedImage, error) {
	decode := DecodeFunc(DefaultDecode)
	var hook func(time.Duration)

	if len(opts) > 0 && opts[0] != nil {
		if opts[0].Decoder != nil {
			decode = opts[0].Decoder
		}
		hook = opts[0].TimingHook
	}

	var start time.Time
	if hook != nil {
		start = time.Now()
	}
	pix, width, height := decode(data)
	if hook != nil {
		hook(time.Since(start))
	}

	if pix == nil {
		// The primitive gives no cause; assume a problem with the
		// content rather than guessing a finer one.
		return nil, ErrBadImage
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Guard the stride multiplication before performing it.
	if width > math.MaxInt/BytesPerPixel {
		return nil, ErrInvalidDimensions
	}
	stride := width * BytesPerPixel
	if len(pix)/stride < height {
		return nil, ErrInvalidDimensions
	}

	return &DecodedImage{
		pix:    pix,
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// DefaultDecode is the built-in decode primitive. It recognizes every format
// registered with the standard image package (WebP, PNG, JPEG and GIF are
// registered by this package's imports) and flattens the decoded image into
// a packed, padding-free NRGBA buffer.
func DefaultDecode(data []byte) (pix []byte, width, height int) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0
	}

	// Clone re-packs any source color model into NRGBA with stride
	// exactly width*4.
	flat := imaging.Clone(img)
	bounds := flat.Bounds()

	return flat.Pix, bounds.Dx(), bounds.Dy()
}
