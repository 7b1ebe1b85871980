package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pixelops/internal/config"
	"pixelops/internal/logger"
	"pixelops/internal/pixel"
	"pixelops/internal/processing/chain"
	"pixelops/internal/processing/conversion"
	"pixelops/internal/processing/metrics"

	"golang.org/x/sync/errgroup"
)

// Result describes one processed input file. Metrics is nil unless the
// chain output is Gray8 and matches the source dimensions.
type Result struct {
	Input    string
	Output   string
	Width    int
	Height   int
	Duration time.Duration
	Metrics  *metrics.Segmentation
}

// Runner processes independent image files concurrently. Each file goes
// through load, the processing chain, and save on one goroutine.
type Runner struct {
	backend   Backend
	chain     *chain.ProcessingChain
	logger    logger.Logger
	workers   int
	outputDir string
	suffix    string
	extension string
}

func NewRunner(cfg *config.Config, log logger.Logger) (*Runner, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pc, err := cfg.Chain(log)
	if err != nil {
		return nil, err
	}

	backend := NativeBackend()
	if cfg.Pipeline.Backend == config.BackendOpenCV {
		backend = OpenCVBackend()
	}

	return &Runner{
		backend:   backend,
		chain:     pc,
		logger:    log,
		workers:   cfg.Pipeline.Workers,
		outputDir: cfg.Pipeline.OutputDir,
		suffix:    cfg.Pipeline.Suffix,
		extension: cfg.Pipeline.Extension,
	}, nil
}

// OutputPath returns where the result for input is written.
func (r *Runner) OutputPath(input string) string {
	dir, base := filepath.Split(input)
	if r.outputDir != "" {
		dir = r.outputDir
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if r.extension != "" {
		ext = "." + strings.TrimPrefix(r.extension, ".")
	}
	return filepath.Join(dir, stem+r.suffix+ext)
}

// Run processes every input. It stops scheduling new files after the first
// failure and returns that error; results of completed files are returned
// in input order either way, with zero entries for files that did not finish.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]Result, error) {
	results := make([]Result, len(inputs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)

	start := time.Now()
	for i, input := range inputs {
		i, input := i, input
		eg.Go(func() error {
			res, err := r.processFile(ctx, input)
			if err != nil {
				r.logger.Error("Pipeline", err, map[string]interface{}{"input": input})
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res
			return nil
		})
	}
	err := eg.Wait()

	r.logger.Info("Pipeline", "batch finished", map[string]interface{}{
		"files":    len(inputs),
		"backend":  r.backend.Name(),
		"workers":  r.workers,
		"duration": time.Since(start).String(),
		"failed":   err != nil,
	})
	return results, err
}

func (r *Runner) processFile(ctx context.Context, input string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()

	buf, err := r.backend.Load(input)
	if err != nil {
		return Result{}, fmt.Errorf("load failed: %w", err)
	}
	r.logger.Debug("Pipeline", "image loaded", map[string]interface{}{
		"input":  input,
		"format": buf.Format().String(),
		"width":  buf.Width(),
		"height": buf.Height(),
	})

	out, err := r.chain.Execute(ctx, buf)
	if err != nil {
		return Result{}, err
	}

	output := r.OutputPath(input)
	if err := r.backend.Save(output, out); err != nil {
		return Result{}, fmt.Errorf("save failed: %w", err)
	}

	res := Result{
		Input:    input,
		Output:   output,
		Width:    out.Width(),
		Height:   out.Height(),
		Duration: time.Since(start),
		Metrics:  r.evaluate(input, buf, out),
	}
	fields := map[string]interface{}{
		"input":    input,
		"output":   output,
		"duration": res.Duration.String(),
	}
	if res.Metrics != nil {
		for k, v := range res.Metrics.Fields() {
			fields[k] = v
		}
	}
	r.logger.Info("Pipeline", "image processed", fields)
	return res, nil
}

// evaluate scores out against the grayscale form of src. Failures only
// cost the metrics, never the file.
func (r *Runner) evaluate(input string, src, out *pixel.Buffer) *metrics.Segmentation {
	if out.Format() != pixel.Gray8 || out.Width() != src.Width() || out.Height() != src.Height() {
		return nil
	}
	gray, err := conversion.Normalize(src)
	if err != nil {
		r.logger.Warning("Pipeline", "metrics skipped", map[string]interface{}{
			"input": input,
			"error": err.Error(),
		})
		return nil
	}
	m, err := metrics.Evaluate(gray, out, nil)
	if err != nil {
		r.logger.Warning("Pipeline", "metrics skipped", map[string]interface{}{
			"input": input,
			"error": err.Error(),
		})
		return nil
	}
	return m
}
