package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pixelops/internal/pixel"

	"github.com/google/renameio"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Codec names a file encoding.
type Codec string

const (
	BMP  Codec = "bmp"
	PNG  Codec = "png"
	TIFF Codec = "tiff"
)

var ErrUnknownCodec = errors.New("unknown image codec")

// CodecFromPath picks the codec from a file extension.
func CodecFromPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp", ".dib":
		return BMP, nil
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCodec, filepath.Ext(path))
	}
}

// Decode reads one image in the given codec.
func Decode(r io.Reader, codec Codec) (*pixel.Buffer, error) {
	var (
		img image.Image
		err error
	)
	switch codec {
	case BMP:
		img, err = bmp.Decode(r)
	case PNG:
		img, err = png.Decode(r)
	case TIFF:
		img, err = tiff.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
	}
	if err != nil {
		return nil, fmt.Errorf("%s decode failed: %w", codec, err)
	}
	return FromImage(img)
}

// Encode writes buf in the given codec.
func Encode(w io.Writer, buf *pixel.Buffer, codec Codec) error {
	img := ToImage(buf)

	var err error
	switch codec {
	case BMP:
		err = bmp.Encode(w, img)
	case PNG:
		err = png.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
	}
	if err != nil {
		return fmt.Errorf("%s encode failed: %w", codec, err)
	}
	return nil
}

// Load decodes the file at path, choosing the codec by extension.
func Load(path string) (*pixel.Buffer, error) {
	codec, err := CodecFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(bufio.NewReader(f), codec)
}

// Save encodes buf into path, choosing the codec by extension. The file is
// replaced atomically: readers see either the old or the complete new file.
func Save(path string, buf *pixel.Buffer) error {
	codec, err := CodecFromPath(path)
	if err != nil {
		return err
	}

	o, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer o.Cleanup()

	w := bufio.NewWriter(o)
	if err := Encode(w, buf, codec); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return o.CloseAtomicallyReplace()
}
