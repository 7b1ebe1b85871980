// Package conversion turns Indexed1 and RGB24 buffers into the Gray8 working
// format used by thresholding and composition.
package conversion

import (
	"fmt"

	"pixelops/internal/pixel"
)

// Luma weights applied to the R, G and B channels.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// FromRGB24 converts an RGB24 buffer to Gray8 using
// floor(0.299R + 0.587G + 0.114B).
func FromRGB24(src *pixel.Buffer) (*pixel.Buffer, error) {
	if src.Format() != pixel.RGB24 {
		return nil, fmt.Errorf("%w: RGB24 conversion requires RGB24 input, got %s",
			pixel.ErrFormatMismatch, src.Format())
	}

	dst, err := pixel.New(src.Width(), src.Height(), pixel.Gray8)
	if err != nil {
		return nil, fmt.Errorf("destination buffer creation failed: %w", err)
	}

	width := src.Width()
	for y := 0; y < src.Height(); y++ {
		in := src.Row(y)
		out := dst.Row(y)
		for x := 0; x < width; x++ {
			out[x] = luma(in[3*x], in[3*x+1], in[3*x+2])
		}
	}

	return dst, nil
}

// luma keeps every product rounded to float64 before summing; a fused
// multiply-add would change the truncated result for some inputs.
func luma(r, g, b uint8) uint8 {
	return uint8(float64(weightR*float64(r)) + float64(weightG*float64(g)) + float64(weightB*float64(b)))
}

// From1Bit converts an Indexed1 buffer to Gray8, mapping set bits to 255
// and clear bits to 0.
func From1Bit(src *pixel.Buffer) (*pixel.Buffer, error) {
	if src.Format() != pixel.Indexed1 {
		return nil, fmt.Errorf("%w: 1-bit conversion requires Indexed1 input, got %s",
			pixel.ErrFormatMismatch, src.Format())
	}

	dst, err := pixel.New(src.Width(), src.Height(), pixel.Gray8)
	if err != nil {
		return nil, fmt.Errorf("destination buffer creation failed: %w", err)
	}

	width := src.Width()
	for y := 0; y < src.Height(); y++ {
		in := src.Row(y)
		out := dst.Row(y)
		for x := 0; x < width; x++ {
			if in[x/8]&(0x80>>(x%8)) != 0 {
				out[x] = 255
			}
		}
	}

	return dst, nil
}

// Normalize returns src converted to Gray8. Gray8 input is returned as is,
// without a copy.
func Normalize(src *pixel.Buffer) (*pixel.Buffer, error) {
	switch src.Format() {
	case pixel.Gray8:
		return src, nil
	case pixel.RGB24:
		return FromRGB24(src)
	case pixel.Indexed1:
		return From1Bit(src)
	default:
		return nil, fmt.Errorf("%w: %s", pixel.ErrUnsupportedFormat, src.Format())
	}
}
