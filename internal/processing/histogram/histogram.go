// Package histogram counts pixel intensities of Gray8 buffers.
package histogram

import (
	"fmt"

	"pixelops/internal/pixel"
)

// Bins is the number of intensity levels in a Gray8 sample.
const Bins = 256

// Histogram maps each intensity to the number of pixels holding it.
type Histogram [Bins]int

// Build counts the sample bytes of every row of a Gray8 buffer. Stride
// padding is never counted, so the total is always width*height.
func Build(src *pixel.Buffer) (Histogram, error) {
	var h Histogram
	if src.Format() != pixel.Gray8 {
		return h, fmt.Errorf("%w: histogram requires Gray8 input, got %s",
			pixel.ErrFormatMismatch, src.Format())
	}

	for y := 0; y < src.Height(); y++ {
		for _, v := range src.Row(y) {
			h[v]++
		}
	}
	return h, nil
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	var n int
	for _, c := range h {
		n += c
	}
	return n
}

// Count returns the pixel count of bins lo through hi inclusive.
func (h *Histogram) Count(lo, hi int) int {
	var n int
	for i := lo; i <= hi; i++ {
		n += h[i]
	}
	return n
}

// WeightedSum returns the sum of i*h[i] for bins lo through hi inclusive.
func (h *Histogram) WeightedSum(lo, hi int) int {
	var n int
	for i := lo; i <= hi; i++ {
		n += i * h[i]
	}
	return n
}
