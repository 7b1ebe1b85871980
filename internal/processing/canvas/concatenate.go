// Package canvas composes Gray8 buffers: side-by-side concatenation and
// zero border padding.
package canvas

import (
	"errors"
	"fmt"

	"pixelops/internal/pixel"
	"pixelops/internal/processing/conversion"
)

// Direction selects the axis along which Concatenate joins two buffers.
type Direction int

const (
	// Horizontal places the second buffer to the right of the first.
	Horizontal Direction = iota
	// Vertical places the second buffer below the first.
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

var ErrInvalidDirection = errors.New("invalid concatenation direction")

// Concatenate normalizes a and b to Gray8 and copies them onto one canvas,
// a first. Canvas cells covered by neither input stay 0.
func Concatenate(a, b *pixel.Buffer, dir Direction) (*pixel.Buffer, error) {
	if dir != Horizontal && dir != Vertical {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirection, dir)
	}

	ga, err := conversion.Normalize(a)
	if err != nil {
		return nil, fmt.Errorf("first input: %w", err)
	}
	gb, err := conversion.Normalize(b)
	if err != nil {
		return nil, fmt.Errorf("second input: %w", err)
	}

	var width, height, offX, offY int
	if dir == Horizontal {
		width = ga.Width() + gb.Width()
		height = max(ga.Height(), gb.Height())
		offX = ga.Width()
	} else {
		width = max(ga.Width(), gb.Width())
		height = ga.Height() + gb.Height()
		offY = ga.Height()
	}

	dst, err := pixel.New(width, height, pixel.Gray8)
	if err != nil {
		return nil, fmt.Errorf("destination buffer creation failed: %w", err)
	}
	blit(dst, ga, 0, 0)
	blit(dst, gb, offX, offY)
	return dst, nil
}

// blit copies every row of src into dst with its top-left corner at (x, y).
func blit(dst, src *pixel.Buffer, x, y int) {
	for row := 0; row < src.Height(); row++ {
		copy(dst.Row(y + row)[x:], src.Row(row))
	}
}
