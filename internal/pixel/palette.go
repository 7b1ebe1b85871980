package pixel

import "image/color"

// GrayPalette returns the 256-entry identity gray palette implied by every
// Gray8 buffer: entry i is RGB(i, i, i). Each call returns a fresh slice.
func GrayPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}
