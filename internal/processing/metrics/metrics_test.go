package metrics

import (
	"testing"

	"pixelops/internal/pixel"
	"pixelops/internal/processing/threshold"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(t *testing.T, samples ...byte) *pixel.Buffer {
	t.Helper()
	b, err := pixel.FromBytes(len(samples), 1, pixel.Gray8, len(samples), samples)
	require.NoError(t, err)
	return b
}

// halves returns a 4x4 image with dark left and bright right columns.
func halves(t *testing.T, left, right uint8) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(4, 4, pixel.Gray8)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := left
			if x >= 2 {
				v = right
			}
			b.Set(x, y, v)
		}
	}
	return b
}

func TestEvaluateAgainstReference(t *testing.T) {
	original := row(t, 10, 10, 200, 200)
	reference := row(t, 0, 0, 255, 255)
	segmented := row(t, 0, 255, 255, 255)

	m, err := Evaluate(original, segmented, reference)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, m.IoU, 1e-12)
	assert.InDelta(t, 0.8, m.Dice, 1e-12)
	assert.InDelta(t, 0.25, m.MisclassificationError, 1e-12)

	// Background {10} has no variance; foreground {10,200,200} has 12033.3.
	assert.InDelta(t, 1/(1+9025.0/255), m.RegionUniformity, 1e-9)
	// A single row has no interior pixels to test for edges.
	assert.Equal(t, 1.0, m.BoundaryAccuracy)
}

func TestEvaluatePerfectSplit(t *testing.T) {
	original := row(t, 10, 10, 200, 200)
	segmented := row(t, 0, 0, 255, 255)

	m, err := Evaluate(original, segmented, segmented)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.IoU)
	assert.Equal(t, 1.0, m.Dice)
	assert.Zero(t, m.MisclassificationError)
	assert.Equal(t, 1.0, m.RegionUniformity)
}

func TestEvaluateEmptyMasks(t *testing.T) {
	dark := row(t, 0, 0, 0)

	m, err := Evaluate(dark, dark, dark)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.IoU)
	assert.Equal(t, 1.0, m.Dice)
	assert.Zero(t, m.MisclassificationError)
}

func TestEvaluateDefaultsToOtsuReference(t *testing.T) {
	original := halves(t, 30, 220)
	segmented, err := threshold.MeanBinarize(original)
	require.NoError(t, err)

	m, err := Evaluate(original, segmented, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.IoU)
	assert.Zero(t, m.MisclassificationError)
}

func TestBoundaryAccuracy(t *testing.T) {
	original := halves(t, 0, 255)

	m, err := Evaluate(original, original, original)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.BoundaryAccuracy)

	// A segmentation without any class change preserves none of the edges.
	m, err = Evaluate(original, halves(t, 255, 255), original)
	require.NoError(t, err)
	assert.Zero(t, m.BoundaryAccuracy)
}

func TestEvaluateRejectsMismatchedInput(t *testing.T) {
	gray := row(t, 1, 2)

	rgb, err := pixel.New(2, 1, pixel.RGB24)
	require.NoError(t, err)
	_, err = Evaluate(gray, rgb, nil)
	assert.ErrorIs(t, err, pixel.ErrFormatMismatch)

	_, err = Evaluate(gray, row(t, 1, 2, 3), nil)
	assert.ErrorIs(t, err, pixel.ErrDimensionMismatch)

	_, err = Evaluate(gray, gray, row(t, 1))
	assert.ErrorIs(t, err, pixel.ErrDimensionMismatch)
}

func TestFields(t *testing.T) {
	m := &Segmentation{IoU: 0.5, Dice: 0.6}
	f := m.Fields()
	assert.Equal(t, 0.5, f["iou"])
	assert.Equal(t, 0.6, f["dice"])
	assert.Len(t, f, 5)
	assert.Contains(t, m.String(), "iou 0.5000")
}
