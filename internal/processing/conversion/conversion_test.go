package conversion

import (
	"testing"

	"pixelops/internal/pixel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformRGB(t *testing.T, width, height int, r, g, b uint8) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.New(width, height, pixel.RGB24)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetRGB(x, y, r, g, b)
		}
	}
	return buf
}

func assertUniform(t *testing.T, buf *pixel.Buffer, want uint8) {
	t.Helper()
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			require.Equal(t, want, buf.At(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestFromRGB24Uniform(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"white", 255, 255, 255, 255},
		{"black", 0, 0, 0, 0},
		{"mid gray truncates", 128, 128, 128, 127},
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 149},
		{"blue", 0, 0, 255, 29},
		{"mixed", 10, 20, 30, 18},
		{"warm", 200, 100, 50, 124},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := uniformRGB(t, 5, 3, tt.r, tt.g, tt.b)
			dst, err := FromRGB24(src)
			require.NoError(t, err)
			assert.Equal(t, pixel.Gray8, dst.Format())
			assert.Equal(t, 5, dst.Width())
			assert.Equal(t, 3, dst.Height())
			assertUniform(t, dst, tt.want)
		})
	}
}

func TestFromRGB24ChannelOrder(t *testing.T) {
	// Stride 8 leaves two padding bytes per row which must not be read.
	src, err := pixel.FromBytes(2, 2, pixel.RGB24, 8, []byte{
		255, 0, 0, 0, 0, 255, 99, 99,
		0, 255, 0, 0, 0, 0, 99, 99,
	})
	require.NoError(t, err)

	dst, err := FromRGB24(src)
	require.NoError(t, err)
	assert.Equal(t, []byte{76, 29}, dst.Row(0))
	assert.Equal(t, []byte{149, 0}, dst.Row(1))
	assert.NotSame(t, src, dst)
}

func TestFromRGB24RejectsOtherFormats(t *testing.T) {
	gray, err := pixel.New(2, 2, pixel.Gray8)
	require.NoError(t, err)

	_, err = FromRGB24(gray)
	assert.ErrorIs(t, err, pixel.ErrFormatMismatch)
}

func TestFrom1Bit(t *testing.T) {
	// 10 pixels per row: byte 0 covers x=0..7, the top bits of byte 1 cover x=8..9.
	src, err := pixel.FromBytes(10, 2, pixel.Indexed1, 4, []byte{
		0b10100000, 0b01000000, 0xff, 0xff,
		0b00000001, 0b10111111, 0xff, 0xff,
	})
	require.NoError(t, err)

	dst, err := From1Bit(src)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 255, 0, 0, 0, 0, 0, 0, 255}, dst.Row(0))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 255, 255, 0}, dst.Row(1))

	for y := 0; y < dst.Height(); y++ {
		for _, v := range dst.Row(y) {
			assert.Contains(t, []uint8{0, 255}, v)
		}
	}
}

func TestFrom1BitRejectsOtherFormats(t *testing.T) {
	src := uniformRGB(t, 1, 1, 0, 0, 0)
	_, err := From1Bit(src)
	assert.ErrorIs(t, err, pixel.ErrFormatMismatch)
}

func TestNormalize(t *testing.T) {
	gray, err := pixel.New(3, 3, pixel.Gray8)
	require.NoError(t, err)
	gray.Set(1, 1, 42)

	once, err := Normalize(gray)
	require.NoError(t, err)
	assert.Same(t, gray, once)

	twice, err := Normalize(once)
	require.NoError(t, err)
	assert.Equal(t, once.Pix(), twice.Pix())

	rgb, err := Normalize(uniformRGB(t, 2, 2, 255, 255, 255))
	require.NoError(t, err)
	assert.Equal(t, pixel.Gray8, rgb.Format())
	assertUniform(t, rgb, 255)

	bits, err := pixel.New(4, 1, pixel.Indexed1)
	require.NoError(t, err)
	bits.SetBit(2, 0, true)
	fromBits, err := Normalize(bits)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255, 0}, fromBits.Row(0))

	_, err = Normalize(&pixel.Buffer{})
	assert.ErrorIs(t, err, pixel.ErrUnsupportedFormat)
}
