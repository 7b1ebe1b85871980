package chain

import (
	"context"
	"fmt"
	"time"

	"pixelops/internal/logger"
	"pixelops/internal/pixel"
)

type ProcessingStep interface {
	Apply(ctx context.Context, input *pixel.Buffer) (*pixel.Buffer, error)
	Name() string
}

type ProcessingChain struct {
	steps  []ProcessingStep
	logger logger.Logger
}

func NewProcessingChain(log logger.Logger, steps []ProcessingStep) *ProcessingChain {
	if log == nil {
		log = logger.NewNop()
	}
	return &ProcessingChain{
		steps:  steps,
		logger: log,
	}
}

// Execute runs every step in order, feeding each the previous result. The
// context is checked between steps; a step itself always runs to completion.
func (pc *ProcessingChain) Execute(ctx context.Context, input *pixel.Buffer) (*pixel.Buffer, error) {
	current := input

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := time.Now()
		result, err := step.Apply(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		pc.logger.Debug("ProcessingChain", "step completed", map[string]interface{}{
			"step":     step.Name(),
			"format":   result.Format().String(),
			"width":    result.Width(),
			"height":   result.Height(),
			"duration": time.Since(start).String(),
		})
		current = result
	}

	return current, nil
}

func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
