package threshold

import (
	"fmt"

	"pixelops/internal/pixel"
)

// Binarize returns a new Gray8 buffer with the stride of src, holding 0
// where src < t and 255 elsewhere. src is not modified.
func Binarize(src *pixel.Buffer, t uint8) (*pixel.Buffer, error) {
	if src.Format() != pixel.Gray8 {
		return nil, fmt.Errorf("%w: binarize requires Gray8 input, got %s",
			pixel.ErrFormatMismatch, src.Format())
	}

	dst := src.Clone()
	if err := BinarizeInPlace(dst, t); err != nil {
		return nil, err
	}
	return dst, nil
}

// BinarizeInPlace applies the Binarize rule to buf, overwriting its samples.
// Stride padding is left untouched.
func BinarizeInPlace(buf *pixel.Buffer, t uint8) error {
	if buf.Format() != pixel.Gray8 {
		return fmt.Errorf("%w: binarize requires Gray8 input, got %s",
			pixel.ErrFormatMismatch, buf.Format())
	}
	for y := 0; y < buf.Height(); y++ {
		row := buf.Row(y)
		apply(row, row, t)
	}
	return nil
}

// MeanBinarize binarizes src at its Otsu threshold.
func MeanBinarize(src *pixel.Buffer) (*pixel.Buffer, error) {
	t, err := Otsu(src)
	if err != nil {
		return nil, err
	}
	return Binarize(src, t)
}

func apply(dst, src []byte, t uint8) {
	for i, v := range src {
		if v < t {
			dst[i] = 0
		} else {
			dst[i] = 255
		}
	}
}
