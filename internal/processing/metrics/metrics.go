// Package metrics scores a binarized image against its grayscale source.
package metrics

import (
	"fmt"
	"math"

	"pixelops/internal/pixel"
	"pixelops/internal/processing/threshold"
)

// edgeThreshold is the Sobel magnitude above which a source pixel counts as an edge.
const edgeThreshold = 30.0

// Segmentation holds quality scores for one thresholding result.
type Segmentation struct {
	IoU                    float64 // Intersection over Union with the reference mask
	Dice                   float64 // Dice similarity with the reference mask
	MisclassificationError float64 // share of pixels that disagree with the reference
	RegionUniformity       float64 // 1/(1+weighted class variance/255), in (0,1]
	BoundaryAccuracy       float64 // share of source edges that lie on a class boundary
}

// Evaluate scores segmented against original. Both must be Gray8 buffers of
// the same size; samples above 127 count as foreground. A nil reference is
// replaced by original binarized at its Otsu threshold.
func Evaluate(original, segmented, reference *pixel.Buffer) (*Segmentation, error) {
	if err := checkPair(original, segmented); err != nil {
		return nil, err
	}
	if reference == nil {
		var err error
		if reference, err = threshold.MeanBinarize(original); err != nil {
			return nil, fmt.Errorf("reference generation failed: %w", err)
		}
	} else if err := checkPair(original, reference); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	m := &Segmentation{}
	maskAgreement(reference, segmented, m)
	m.RegionUniformity = regionUniformity(original, segmented)
	m.BoundaryAccuracy = boundaryAccuracy(original, segmented)
	return m, nil
}

func checkPair(a, b *pixel.Buffer) error {
	if a.Format() != pixel.Gray8 || b.Format() != pixel.Gray8 {
		return fmt.Errorf("%w: metrics require Gray8 input, got %s and %s",
			pixel.ErrFormatMismatch, a.Format(), b.Format())
	}
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", pixel.ErrDimensionMismatch,
			a.Width(), a.Height(), b.Width(), b.Height())
	}
	return nil
}

func maskAgreement(reference, segmented *pixel.Buffer, m *Segmentation) {
	var tp, fp, fn, tn int
	for y := 0; y < segmented.Height(); y++ {
		ref, seg := reference.Row(y), segmented.Row(y)
		for x := range seg {
			switch r, s := ref[x] > 127, seg[x] > 127; {
			case r && s:
				tp++
			case s:
				fp++
			case r:
				fn++
			default:
				tn++
			}
		}
	}

	// Both masks empty is a perfect match.
	m.IoU, m.Dice = 1, 1
	if union := tp + fp + fn; union > 0 {
		m.IoU = float64(tp) / float64(union)
		m.Dice = 2 * float64(tp) / float64(2*tp+fp+fn)
	}
	m.MisclassificationError = float64(fp+fn) / float64(tp+fp+fn+tn)
}

func regionUniformity(original, segmented *pixel.Buffer) float64 {
	var fg, bg struct {
		sum, sumSq float64
		n          int
	}
	for y := 0; y < original.Height(); y++ {
		src, seg := original.Row(y), segmented.Row(y)
		for x, v := range src {
			c := &bg
			if seg[x] > 127 {
				c = &fg
			}
			f := float64(v)
			c.sum += f
			c.sumSq += f * f
			c.n++
		}
	}

	variance := func(sum, sumSq float64, n int) float64 {
		if n < 2 {
			return 0
		}
		return (sumSq - sum*sum/float64(n)) / float64(n-1)
	}
	total := float64(fg.n + bg.n)
	weighted := (float64(fg.n)*variance(fg.sum, fg.sumSq, fg.n) +
		float64(bg.n)*variance(bg.sum, bg.sumSq, bg.n)) / total
	return 1 / (1 + weighted/255)
}

func boundaryAccuracy(original, segmented *pixel.Buffer) float64 {
	var edges, kept int
	for y := 1; y < original.Height()-1; y++ {
		for x := 1; x < original.Width()-1; x++ {
			if sobel(original, x, y) <= edgeThreshold {
				continue
			}
			edges++
			if onBoundary(segmented, x, y) {
				kept++
			}
		}
	}
	if edges == 0 {
		return 1
	}
	return float64(kept) / float64(edges)
}

func sobel(b *pixel.Buffer, x, y int) float64 {
	p := func(dx, dy int) float64 { return float64(b.At(x+dx, y+dy)) }
	gx := p(1, -1) + 2*p(1, 0) + p(1, 1) - p(-1, -1) - 2*p(-1, 0) - p(-1, 1)
	gy := p(-1, 1) + 2*p(0, 1) + p(1, 1) - p(-1, -1) - 2*p(0, -1) - p(1, -1)
	return math.Hypot(gx, gy)
}

// onBoundary reports whether any 8-neighbor of (x, y) is in the other class.
func onBoundary(b *pixel.Buffer, x, y int) bool {
	center := b.At(x, y) > 127
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && (b.At(x+dx, y+dy) > 127) != center {
				return true
			}
		}
	}
	return false
}

// Fields flattens m for structured logging.
func (m *Segmentation) Fields() map[string]interface{} {
	return map[string]interface{}{
		"iou":               m.IoU,
		"dice":              m.Dice,
		"misclassification": m.MisclassificationError,
		"region_uniformity": m.RegionUniformity,
		"boundary_accuracy": m.BoundaryAccuracy,
	}
}

// String renders m as one line per score.
func (m *Segmentation) String() string {
	return fmt.Sprintf("iou %.4f\ndice %.4f\nmisclassification %.4f\nregion_uniformity %.4f\nboundary_accuracy %.4f",
		m.IoU, m.Dice, m.MisclassificationError, m.RegionUniformity, m.BoundaryAccuracy)
}
