package pipeline

import (
	"pixelops/internal/imageio"
	"pixelops/internal/pixel"

	opencv "pixelops/internal/opencv/conversion"
)

// ImageLoader reads one image file into a pixel buffer.
type ImageLoader interface {
	Load(path string) (*pixel.Buffer, error)
}

// ImageSaver writes a pixel buffer to an image file.
type ImageSaver interface {
	Save(path string, buf *pixel.Buffer) error
}

// Backend bundles the loader and saver of one codec implementation.
type Backend interface {
	ImageLoader
	ImageSaver
	Name() string
}

type nativeBackend struct{}

// NativeBackend decodes and encodes BMP, PNG and TIFF in Go.
func NativeBackend() Backend { return nativeBackend{} }

func (nativeBackend) Name() string                              { return "native" }
func (nativeBackend) Load(path string) (*pixel.Buffer, error)   { return imageio.Load(path) }
func (nativeBackend) Save(path string, buf *pixel.Buffer) error { return imageio.Save(path, buf) }

type openCVBackend struct{}

// OpenCVBackend uses the OpenCV codecs, which accept any format OpenCV was
// built with (JPEG, WebP, ...).
func OpenCVBackend() Backend { return openCVBackend{} }

func (openCVBackend) Name() string                              { return "opencv" }
func (openCVBackend) Load(path string) (*pixel.Buffer, error)   { return opencv.Load(path) }
func (openCVBackend) Save(path string, buf *pixel.Buffer) error { return opencv.Save(path, buf) }
