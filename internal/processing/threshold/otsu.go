// Package threshold computes global Otsu thresholds and binarizes Gray8
// buffers.
package threshold

import (
	"fmt"

	"pixelops/internal/pixel"
	"pixelops/internal/processing/histogram"
)

// Candidate thresholds; 0 and 255 are never selected.
const (
	minCandidate = 1
	maxCandidate = histogram.Bins - 2
)

// Otsu returns the intensity that maximizes between-class variance of the
// buffer's histogram.
func Otsu(src *pixel.Buffer) (uint8, error) {
	h, err := histogram.Build(src)
	if err != nil {
		return 0, fmt.Errorf("otsu threshold: %w", err)
	}
	return OtsuFromHistogram(&h), nil
}

// OtsuFromHistogram returns the first k in [1,254] with the highest score
// (see Scores). It returns 1 when every score is zero.
func OtsuFromHistogram(h *histogram.Histogram) uint8 {
	scores := Scores(h)
	best := minCandidate
	for k := minCandidate + 1; k <= maxCandidate; k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}
	return uint8(best)
}

// Scores returns the between-class variance score of every candidate k:
//
//	(M1*P2 - M2*P1)^2 / (P1*P2)
//
// where P1, M1 are the count and intensity-weighted count of bins 0..k and
// P2, M2 those of bins k+1..255. A zero denominator is replaced by 1.
// Entries 0 and 255 are left at zero.
func Scores(h *histogram.Histogram) [histogram.Bins]float64 {
	var scores [histogram.Bins]float64

	total := h.Count(0, histogram.Bins-1)
	totalWeighted := h.WeightedSum(0, histogram.Bins-1)

	p1 := h.Count(0, minCandidate-1)
	m1 := h.WeightedSum(0, minCandidate-1)
	for k := minCandidate; k <= maxCandidate; k++ {
		p1 += h[k]
		m1 += k * h[k]
		p2 := total - p1
		m2 := totalWeighted - m1

		denom := float64(p1) * float64(p2)
		if denom == 0 {
			denom = 1
		}
		diff := float64(m1)*float64(p2) - float64(m2)*float64(p1)
		scores[k] = diff * diff / denom
	}
	return scores
}
