package pixel

import (
	"fmt"
	"image/color"
)

// Buffer is a rectangular grid of samples in one Format. Row y starts at
// byte offset y*Stride() in Pix(); bytes past the last sample of a row are
// padding and carry no pixel data.
type Buffer struct {
	width  int
	height int
	format Format
	stride int
	data   []byte
}

// New allocates a zeroed buffer whose stride is the minimum row length
// rounded up to a 4-byte boundary.
func New(width, height int, format Format) (*Buffer, error) {
	if err := validate(width, height, format); err != nil {
		return nil, err
	}
	return alloc(width, height, format, alignedStride(width, format)), nil
}

// NewWithStride allocates a zeroed buffer with an explicit row stride.
func NewWithStride(width, height int, format Format, stride int) (*Buffer, error) {
	if err := validate(width, height, format); err != nil {
		return nil, err
	}
	if want := MinStride(width, format); stride < want {
		return nil, fmt.Errorf("%w: %d bytes is below the %d required for %d %s samples",
			ErrInvalidStride, stride, want, width, format)
	}
	return alloc(width, height, format, stride), nil
}

// FromBytes wraps data as a buffer without copying. The caller hands
// ownership of data to the returned buffer.
func FromBytes(width, height int, format Format, stride int, data []byte) (*Buffer, error) {
	if err := validate(width, height, format); err != nil {
		return nil, err
	}
	if want := MinStride(width, format); stride < want {
		return nil, fmt.Errorf("%w: %d bytes is below the %d required for %d %s samples",
			ErrInvalidStride, stride, want, width, format)
	}
	if len(data) != stride*height {
		return nil, fmt.Errorf("%w: got %d bytes, want %d (stride %d x height %d)",
			ErrDimensionMismatch, len(data), stride*height, stride, height)
	}
	return &Buffer{width: width, height: height, format: format, stride: stride, data: data}, nil
}

func validate(width, height int, format Format) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !format.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return nil
}

func alloc(width, height int, format Format, stride int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		format: format,
		stride: stride,
		data:   make([]byte, stride*height),
	}
}

func (b *Buffer) Width() int     { return b.width }
func (b *Buffer) Height() int    { return b.height }
func (b *Buffer) Format() Format { return b.format }
func (b *Buffer) Stride() int    { return b.stride }

// Pix returns the backing storage, stride*height bytes long.
func (b *Buffer) Pix() []byte { return b.data }

// Row returns the sample bytes of row y, excluding stride padding.
func (b *Buffer) Row(y int) []byte {
	if y < 0 || y >= b.height {
		panic(fmt.Sprintf("pixel: row %d out of range [0,%d)", y, b.height))
	}
	start := y * b.stride
	return b.data[start : start+MinStride(b.width, b.format)]
}

// Clone returns a deep copy with the same stride.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.data = make([]byte, len(b.data))
	copy(c.data, b.data)
	return &c
}

// Palette returns the implied color table of an 8-bit buffer: the identity
// gray ramp for Gray8, black and white for Indexed1, nil for RGB24.
func (b *Buffer) Palette() color.Palette {
	switch b.format {
	case Gray8:
		return GrayPalette()
	case Indexed1:
		return color.Palette{color.Gray{Y: 0}, color.Gray{Y: 255}}
	default:
		return nil
	}
}

func (b *Buffer) check(x, y int) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("pixel: (%d,%d) out of range for %dx%d buffer", x, y, b.width, b.height))
	}
}

func (b *Buffer) mustFormat(f Format) {
	if b.format != f {
		panic(fmt.Sprintf("pixel: %s access on %s buffer", f, b.format))
	}
}

// Offset returns the byte index of the sample at (x, y). For Indexed1 it is
// the byte holding the pixel's bit.
func (b *Buffer) Offset(x, y int) int {
	b.check(x, y)
	if b.format == Indexed1 {
		return y*b.stride + x/8
	}
	return y*b.stride + x*(b.format.BitsPerPixel()/8)
}

// At returns the Gray8 sample at (x, y), or 0/1 for Indexed1 buffers.
func (b *Buffer) At(x, y int) uint8 {
	switch b.format {
	case Indexed1:
		if b.Bit(x, y) {
			return 1
		}
		return 0
	case Gray8:
		return b.data[b.Offset(x, y)]
	default:
		panic(fmt.Sprintf("pixel: At on %s buffer", b.format))
	}
}

// Set stores v at (x, y). On Indexed1 buffers any non-zero v sets the bit.
func (b *Buffer) Set(x, y int, v uint8) {
	switch b.format {
	case Indexed1:
		b.SetBit(x, y, v != 0)
	case Gray8:
		b.data[b.Offset(x, y)] = v
	default:
		panic(fmt.Sprintf("pixel: Set on %s buffer", b.format))
	}
}

// Bit reports whether the Indexed1 pixel at (x, y) is set.
func (b *Buffer) Bit(x, y int) bool {
	b.mustFormat(Indexed1)
	return b.data[b.Offset(x, y)]&(0x80>>(x%8)) != 0
}

func (b *Buffer) SetBit(x, y int, on bool) {
	b.mustFormat(Indexed1)
	i := b.Offset(x, y)
	mask := byte(0x80 >> (x % 8))
	if on {
		b.data[i] |= mask
	} else {
		b.data[i] &^= mask
	}
}

// RGBAt returns the channels of the RGB24 pixel at (x, y).
func (b *Buffer) RGBAt(x, y int) (r, g, bl uint8) {
	b.mustFormat(RGB24)
	i := b.Offset(x, y)
	return b.data[i], b.data[i+1], b.data[i+2]
}

func (b *Buffer) SetRGB(x, y int, r, g, bl uint8) {
	b.mustFormat(RGB24)
	i := b.Offset(x, y)
	b.data[i], b.data[i+1], b.data[i+2] = r, g, bl
}

func (b *Buffer) String() string {
	return fmt.Sprintf("%s %dx%d stride=%d", b.format, b.width, b.height, b.stride)
}
