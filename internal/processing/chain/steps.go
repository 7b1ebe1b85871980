package chain

import (
	"context"
	"fmt"

	"pixelops/internal/pixel"
	"pixelops/internal/processing/canvas"
	"pixelops/internal/processing/conversion"
	"pixelops/internal/processing/threshold"
)

// Step names accepted by NewStep.
const (
	StepNormalize = "normalize"
	StepOtsu      = "otsu"
	StepBinarize  = "binarize"
	StepBorder    = "border"
)

type NormalizeStep struct{}

func (NormalizeStep) Name() string { return StepNormalize }

func (NormalizeStep) Apply(_ context.Context, input *pixel.Buffer) (*pixel.Buffer, error) {
	return conversion.Normalize(input)
}

// OtsuStep binarizes at the input's own Otsu threshold.
type OtsuStep struct{}

func (OtsuStep) Name() string { return StepOtsu }

func (OtsuStep) Apply(_ context.Context, input *pixel.Buffer) (*pixel.Buffer, error) {
	return threshold.MeanBinarize(input)
}

// BinarizeStep binarizes at a fixed threshold.
type BinarizeStep struct {
	Threshold uint8
}

func (BinarizeStep) Name() string { return StepBinarize }

func (s BinarizeStep) Apply(_ context.Context, input *pixel.Buffer) (*pixel.Buffer, error) {
	return threshold.Binarize(input, s.Threshold)
}

type BorderStep struct{}

func (BorderStep) Name() string { return StepBorder }

func (BorderStep) Apply(_ context.Context, input *pixel.Buffer) (*pixel.Buffer, error) {
	return canvas.AddBorder(input)
}

// NewStep builds a step by name. thresholdValue is used by binarize only.
func NewStep(name string, thresholdValue int) (ProcessingStep, error) {
	switch name {
	case StepNormalize:
		return NormalizeStep{}, nil
	case StepOtsu:
		return OtsuStep{}, nil
	case StepBinarize:
		if thresholdValue < 0 || thresholdValue > 255 {
			return nil, fmt.Errorf("binarize threshold must be between 0 and 255, got: %d", thresholdValue)
		}
		return BinarizeStep{Threshold: uint8(thresholdValue)}, nil
	case StepBorder:
		return BorderStep{}, nil
	default:
		return nil, fmt.Errorf("unknown processing step %q", name)
	}
}
