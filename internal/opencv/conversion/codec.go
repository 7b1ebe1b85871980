package conversion

import (
	"fmt"

	"pixelops/internal/pixel"

	"gocv.io/x/gocv"
)

// Load decodes any file format OpenCV understands into a Gray8 or RGB24
// buffer.
func Load(path string) (*pixel.Buffer, error) {
	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("OpenCV could not decode %s", path)
	}
	return FromMat(mat)
}

// Save encodes buf with the OpenCV codec selected by the file extension.
// OpenCV writes 8-bit single-channel images as grayscale, which matches
// the identity palette of Gray8 buffers.
func Save(path string, buf *pixel.Buffer) error {
	mat, err := ToMat(buf)
	if err != nil {
		return err
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("OpenCV could not encode %s", path)
	}
	return nil
}
