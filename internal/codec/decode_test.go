package codec

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"
)

// newPatternNRGBA creates a w x h image with a distinct byte value in every
// channel position.
func newPatternNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte((i*7 + 13) % 251)
	}
	return img
}

// pngBytes encodes img as an in-memory PNG bitstream.
func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	src := newPatternNRGBA(5, 3)
	data := pngBytes(t, src)

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Width() != 5 || img.Height() != 3 {
		t.Errorf("dimensions: got %dx%d, want 5x3", img.Width(), img.Height())
	}
	if img.Stride() != img.Width()*BytesPerPixel {
		t.Errorf("stride: got %d, want %d", img.Stride(), img.Width()*BytesPerPixel)
	}

	got := make([]byte, img.Stride()*img.Height())
	if err := img.CopyPixels(nil, img.Stride(), got); err != nil {
		t.Fatalf("CopyPixels failed: %v", err)
	}
	if !bytes.Equal(got, src.Pix) {
		t.Error("decoded pixels differ from source")
	}
}

func TestDecode_BadData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("this is not an image")},
		{"truncated png", pngBytes(t, newPatternNRGBA(8, 8))[:20]},
		{"riff header only", []byte("RIFF\x00\x00\x00\x00WEBP")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data)
			if !errors.Is(err, ErrBadImage) {
				t.Errorf("error: got %v, want ErrBadImage", err)
			}
			if img != nil {
				t.Error("failed decode must not produce an image")
			}
		})
	}
}

func TestDecode_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		pix    []byte
		width  int
		height int
	}{
		{"zero width", make([]byte, 16), 0, 4},
		{"zero height", make([]byte, 16), 4, 0},
		{"negative width", make([]byte, 16), -1, 4},
		{"negative height", make([]byte, 16), 4, -1},
		{"short buffer", make([]byte, 15), 2, 2},
		{"empty buffer", []byte{}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &Options{
				Decoder: func([]byte) ([]byte, int, int) {
					return tt.pix, tt.width, tt.height
				},
			}
			img, err := Decode(nil, opts)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("error: got %v, want ErrInvalidDimensions", err)
			}
			if img != nil {
				t.Error("contract violation must not produce an image")
			}
		})
	}
}

func TestDecode_CustomDecoder(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	calls := 0
	opts := &Options{
		Decoder: func(data []byte) ([]byte, int, int) {
			calls++
			return pix, 2, 1
		},
	}

	img, err := Decode([]byte("ignored"), opts)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("decode primitive called %d times, want exactly 1", calls)
	}
	if img.Width() != 2 || img.Height() != 1 || img.Stride() != 8 {
		t.Errorf("got %dx%d stride %d, want 2x1 stride 8", img.Width(), img.Height(), img.Stride())
	}

	got := make([]byte, 8)
	if err := img.CopyPixels(nil, 8, got); err != nil {
		t.Fatalf("CopyPixels failed: %v", err)
	}
	if !bytes.Equal(got, pix) {
		t.Errorf("pixels: got %v, want %v", got, pix)
	}
}

func TestDecode_NilBufferFromDecoder(t *testing.T) {
	opts := &Options{
		Decoder: func([]byte) ([]byte, int, int) {
			return nil, 100, 100
		},
	}
	_, err := Decode([]byte("anything"), opts)
	if !errors.Is(err, ErrBadImage) {
		t.Errorf("error: got %v, want ErrBadImage", err)
	}
}

func TestDecode_TimingHook(t *testing.T) {
	calls := 0
	var observed time.Duration
	opts := &Options{
		TimingHook: func(d time.Duration) {
			calls++
			observed = d
		},
	}

	data := pngBytes(t, newPatternNRGBA(4, 4))
	if _, err := Decode(data, opts); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("timing hook called %d times, want 1", calls)
	}
	if observed < 0 {
		t.Errorf("negative duration: %v", observed)
	}
}

func TestDecode_TimingHookOnFailure(t *testing.T) {
	calls := 0
	opts := &Options{
		TimingHook: func(time.Duration) { calls++ },
	}

	if _, err := Decode([]byte("garbage"), opts); !errors.Is(err, ErrBadImage) {
		t.Fatalf("error: got %v, want ErrBadImage", err)
	}
	if calls != 1 {
		t.Errorf("timing hook called %d times, want 1 (hook wraps the primitive, not success)", calls)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	data := pngBytes(t, newPatternNRGBA(7, 5))

	first, err := Decode(data)
	if err != nil {
		t.Fatalf("first Decode failed: %v", err)
	}
	second, err := Decode(data)
	if err != nil {
		t.Fatalf("second Decode failed: %v", err)
	}

	a := make([]byte, first.Stride()*first.Height())
	b := make([]byte, second.Stride()*second.Height())
	if err := first.CopyPixels(nil, first.Stride(), a); err != nil {
		t.Fatalf("CopyPixels (first) failed: %v", err)
	}
	if err := second.CopyPixels(nil, second.Stride(), b); err != nil {
		t.Fatalf("CopyPixels (second) failed: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("two decodes of the same input are not byte-identical")
	}
}

func TestDefaultDecode_Garbage(t *testing.T) {
	pix, w, h := DefaultDecode([]byte("not an image at all"))
	if pix != nil || w != 0 || h != 0 {
		t.Errorf("got (%v, %d, %d), want (nil, 0, 0)", pix, w, h)
	}
}

func TestNRGBA_View(t *testing.T) {
	src := newPatternNRGBA(6, 4)
	img, err := Decode(pngBytes(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	view := img.NRGBA()
	if view.Stride != img.Stride() {
		t.Errorf("view stride: got %d, want %d", view.Stride, img.Stride())
	}
	if got := view.Bounds(); got.Dx() != 6 || got.Dy() != 4 {
		t.Errorf("view bounds: got %v, want 6x4", got)
	}
	if !bytes.Equal(view.Pix, src.Pix) {
		t.Error("view pixels differ from source")
	}
}
