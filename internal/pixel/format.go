package pixel

import "fmt"

// Format identifies the byte layout of a Buffer's samples.
type Format int

const (
	// Indexed1 packs eight pixels per byte, most significant bit first.
	Indexed1 Format = iota + 1
	// RGB24 stores three bytes per pixel in R, G, B order.
	RGB24
	// Gray8 stores one byte per pixel, interpreted through the identity gray palette.
	Gray8
)

func (f Format) String() string {
	switch f {
	case Indexed1:
		return "Indexed1"
	case RGB24:
		return "RGB24"
	case Gray8:
		return "Gray8"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Valid reports whether f is one of the recognized encodings.
func (f Format) Valid() bool {
	return f == Indexed1 || f == RGB24 || f == Gray8
}

// BitsPerPixel returns the sample size of f in bits, or 0 for unknown formats.
func (f Format) BitsPerPixel() int {
	switch f {
	case Indexed1:
		return 1
	case RGB24:
		return 24
	case Gray8:
		return 8
	default:
		return 0
	}
}

// MinStride returns the smallest row length in bytes able to hold width
// samples of format f.
func MinStride(width int, f Format) int {
	return (width*f.BitsPerPixel() + 7) / 8
}

// rowAlignment matches the 4-byte scanline alignment of device-independent bitmaps.
const rowAlignment = 4

func alignedStride(width int, f Format) int {
	s := MinStride(width, f)
	return (s + rowAlignment - 1) / rowAlignment * rowAlignment
}
