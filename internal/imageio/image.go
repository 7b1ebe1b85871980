// Package imageio converts between image.Image values and pixel buffers and
// reads and writes them as BMP, PNG or TIFF files.
package imageio

import (
	"image"
	"image/color"

	"pixelops/internal/pixel"
)

// FromImage copies img into a pixel buffer. Two-color paletted images become
// Indexed1 (set bits mark the brighter entry), 8- and 16-bit gray and
// gray-paletted images become Gray8, and everything else becomes RGB24.
func FromImage(img image.Image) (*pixel.Buffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf, err := pixel.New(width, height, pixel.Gray8)
		if err != nil {
			return nil, err
		}
		for y := 0; y < height; y++ {
			start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.Row(y), src.Pix[start:start+width])
		}
		return buf, nil

	case *image.Gray16:
		buf, err := pixel.New(width, height, pixel.Gray8)
		if err != nil {
			return nil, err
		}
		for y := 0; y < height; y++ {
			row := buf.Row(y)
			for x := 0; x < width; x++ {
				row[x] = color.GrayModel.Convert(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray).Y
			}
		}
		return buf, nil

	case *image.Paletted:
		if len(src.Palette) <= 2 {
			return fromBilevel(src, width, height)
		}
		if isGrayRamp(src.Palette) {
			buf, err := pixel.New(width, height, pixel.Gray8)
			if err != nil {
				return nil, err
			}
			for y := 0; y < height; y++ {
				row := buf.Row(y)
				for x := 0; x < width; x++ {
					row[x] = grayOf(src.Palette, src.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y))
				}
			}
			return buf, nil
		}
	}

	buf, err := pixel.New(width, height, pixel.RGB24)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			buf.SetRGB(x, y, c.R, c.G, c.B)
		}
	}
	return buf, nil
}

func fromBilevel(src *image.Paletted, width, height int) (*pixel.Buffer, error) {
	buf, err := pixel.New(width, height, pixel.Indexed1)
	if err != nil {
		return nil, err
	}

	// The brighter palette entry maps to a set bit. A single-entry palette
	// is bright when its luminance is at least half scale.
	bright := make([]bool, len(src.Palette))
	switch len(src.Palette) {
	case 1:
		bright[0] = luminance(src.Palette[0]) >= 0x8000
	case 2:
		bright[1] = luminance(src.Palette[1]) >= luminance(src.Palette[0])
		bright[0] = !bright[1]
	}

	bounds := src.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := int(src.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y))
			if idx < len(bright) && bright[idx] {
				buf.SetBit(x, y, true)
			}
		}
	}
	return buf, nil
}

// isGrayRamp reports whether every palette entry is a neutral gray.
func isGrayRamp(p color.Palette) bool {
	for _, c := range p {
		r, g, b, _ := c.RGBA()
		if r != g || g != b {
			return false
		}
	}
	return true
}

func grayOf(p color.Palette, idx uint8) uint8 {
	if int(idx) >= len(p) {
		return 0
	}
	return color.GrayModel.Convert(p[idx]).(color.Gray).Y
}

func luminance(c color.Color) uint32 {
	return uint32(color.Gray16Model.Convert(c).(color.Gray16).Y)
}

// ToImage copies buf into an image.Image: Gray8 as *image.Paletted with the
// identity gray palette, Indexed1 as a black and white *image.Paletted, and
// RGB24 as *image.NRGBA.
func ToImage(buf *pixel.Buffer) image.Image {
	rect := image.Rect(0, 0, buf.Width(), buf.Height())

	switch buf.Format() {
	case pixel.Gray8:
		img := image.NewPaletted(rect, buf.Palette())
		for y := 0; y < buf.Height(); y++ {
			copy(img.Pix[y*img.Stride:], buf.Row(y))
		}
		return img

	case pixel.Indexed1:
		img := image.NewPaletted(rect, buf.Palette())
		for y := 0; y < buf.Height(); y++ {
			for x := 0; x < buf.Width(); x++ {
				img.Pix[y*img.Stride+x] = buf.At(x, y)
			}
		}
		return img

	default:
		img := image.NewNRGBA(rect)
		for y := 0; y < buf.Height(); y++ {
			for x := 0; x < buf.Width(); x++ {
				r, g, b := buf.RGBAt(x, y)
				img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
			}
		}
		return img
	}
}
