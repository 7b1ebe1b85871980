// Package conversion moves pixel buffers in and out of OpenCV Mats so the
// OpenCV codecs can serve as an image I/O backend.
package conversion

import (
	"errors"
	"fmt"

	"pixelops/internal/pixel"
	processing "pixelops/internal/processing/conversion"

	"gocv.io/x/gocv"
)

var ErrUnsupportedMatType = errors.New("unsupported Mat type")

// ToMat copies buf into a new continuous Mat. Gray8 and Indexed1 buffers
// become CV8UC1 (1-bit samples expand to 0/255); RGB24 becomes CV8UC3 in
// OpenCV's BGR channel order. The caller must Close the Mat.
func ToMat(buf *pixel.Buffer) (gocv.Mat, error) {
	switch buf.Format() {
	case pixel.Indexed1:
		gray, err := processing.From1Bit(buf)
		if err != nil {
			return gocv.Mat{}, err
		}
		return ToMat(gray)
	case pixel.Gray8:
		return newMat(buf, gocv.MatTypeCV8UC1, func(dst, src []byte) {
			copy(dst, src)
		})
	case pixel.RGB24:
		return newMat(buf, gocv.MatTypeCV8UC3, func(dst, src []byte) {
			for i := 0; i+2 < len(src); i += 3 {
				dst[i], dst[i+1], dst[i+2] = src[i+2], src[i+1], src[i]
			}
		})
	default:
		return gocv.Mat{}, fmt.Errorf("%w: %s", pixel.ErrUnsupportedFormat, buf.Format())
	}
}

func newMat(buf *pixel.Buffer, matType gocv.MatType, copyRow func(dst, src []byte)) (gocv.Mat, error) {
	rowLen := pixel.MinStride(buf.Width(), buf.Format())
	data := make([]byte, rowLen*buf.Height())
	for y := 0; y < buf.Height(); y++ {
		copyRow(data[y*rowLen:(y+1)*rowLen], buf.Row(y))
	}

	wrapped, err := gocv.NewMatFromBytes(buf.Height(), buf.Width(), matType, data)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("Mat creation failed: %w", err)
	}
	defer wrapped.Close()

	// Detach from data, which the Go garbage collector owns.
	return wrapped.Clone(), nil
}

// FromMat copies a CV8UC1, CV8UC3 (BGR) or CV8UC4 (BGRA, alpha dropped) Mat
// into a new Gray8 or RGB24 buffer.
func FromMat(mat gocv.Mat) (*pixel.Buffer, error) {
	if mat.Empty() {
		return nil, errors.New("Mat is empty")
	}

	var (
		format   pixel.Format
		channels int
	)
	switch mat.Type() {
	case gocv.MatTypeCV8UC1:
		format, channels = pixel.Gray8, 1
	case gocv.MatTypeCV8UC3:
		format, channels = pixel.RGB24, 3
	case gocv.MatTypeCV8UC4:
		format, channels = pixel.RGB24, 4
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMatType, int(mat.Type()))
	}

	if !mat.IsContinuous() {
		cont := mat.Clone()
		defer cont.Close()
		mat = cont
	}

	rows, cols := mat.Rows(), mat.Cols()
	buf, err := pixel.New(cols, rows, format)
	if err != nil {
		return nil, err
	}

	data := mat.ToBytes()
	srcRow := cols * channels
	if len(data) < srcRow*rows {
		return nil, fmt.Errorf("%w: Mat holds %d bytes, want %d",
			pixel.ErrDimensionMismatch, len(data), srcRow*rows)
	}

	for y := 0; y < rows; y++ {
		src := data[y*srcRow : (y+1)*srcRow]
		dst := buf.Row(y)
		if channels == 1 {
			copy(dst, src)
			continue
		}
		for x := 0; x < cols; x++ {
			s := src[x*channels:]
			dst[3*x], dst[3*x+1], dst[3*x+2] = s[2], s[1], s[0]
		}
	}

	return buf, nil
}
