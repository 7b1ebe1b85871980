package canvas

import (
	"fmt"

	"pixelops/internal/pixel"
)

// AddBorder returns a copy of src enlarged by one pixel on every side. The
// border is 0; the interior holds src unchanged.
func AddBorder(src *pixel.Buffer) (*pixel.Buffer, error) {
	if src.Format() != pixel.Gray8 {
		return nil, fmt.Errorf("%w: border requires Gray8 input, got %s",
			pixel.ErrFormatMismatch, src.Format())
	}

	dst, err := pixel.New(src.Width()+2, src.Height()+2, pixel.Gray8)
	if err != nil {
		return nil, fmt.Errorf("destination buffer creation failed: %w", err)
	}
	blit(dst, src, 1, 1)
	return dst, nil
}
