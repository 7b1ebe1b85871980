package histogram

import (
	"testing"

	"pixelops/internal/pixel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIgnoresStridePadding(t *testing.T) {
	// Width 3, stride 8: five padding bytes per row hold 200 and must not be counted.
	src, err := pixel.FromBytes(3, 2, pixel.Gray8, 8, []byte{
		0, 10, 10, 200, 200, 200, 200, 200,
		255, 10, 0, 200, 200, 200, 200, 200,
	})
	require.NoError(t, err)

	h, err := Build(src)
	require.NoError(t, err)
	assert.Equal(t, 6, h.Total())
	assert.Equal(t, 2, h[0])
	assert.Equal(t, 3, h[10])
	assert.Equal(t, 1, h[255])
	assert.Zero(t, h[200])
}

func TestBuildTotalsAcrossSizes(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 7}, {17, 5}, {64, 64}} {
		src, err := pixel.New(dims[0], dims[1], pixel.Gray8)
		require.NoError(t, err)
		for i := range src.Pix() {
			src.Pix()[i] = uint8(i * 31)
		}
		h, err := Build(src)
		require.NoError(t, err)
		assert.Equal(t, dims[0]*dims[1], h.Total(), "%dx%d", dims[0], dims[1])
	}
}

func TestBuildRejectsNonGray(t *testing.T) {
	src, err := pixel.New(2, 2, pixel.RGB24)
	require.NoError(t, err)
	_, err = Build(src)
	assert.ErrorIs(t, err, pixel.ErrFormatMismatch)
}

func TestRangeSums(t *testing.T) {
	var h Histogram
	h[1] = 2
	h[3] = 4
	h[255] = 1
	assert.Equal(t, 6, h.Count(0, 3))
	assert.Equal(t, 1, h.Count(4, 255))
	assert.Equal(t, 2+12, h.WeightedSum(0, 3))
	assert.Equal(t, 255, h.WeightedSum(4, 255))
}
