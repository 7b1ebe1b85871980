package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"pixelops/internal/config"
	"pixelops/internal/imageio"
	"pixelops/internal/logger"
	"pixelops/internal/pipeline"
	"pixelops/internal/pixel"
	"pixelops/internal/processing/canvas"
	"pixelops/internal/processing/conversion"
	"pixelops/internal/processing/metrics"
	"pixelops/internal/processing/threshold"
)

type command func(ctx context.Context, args []string, stdout io.Writer, log logger.Logger) error

var commands = map[string]command{
	"threshold": thresholdCmd,
	"binarize":  binarizeCmd,
	"border":    borderCmd,
	"concat":    concatCmd,
	"convert":   convertCmd,
	"batch":     batchCmd,
}

func parse(fs *flag.FlagSet, args []string, positional int) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if positional >= 0 && fs.NArg() != positional {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", fs.Name(), positional, fs.NArg())
	}
	return fs.Args(), nil
}

func loadGray(path string) (*pixel.Buffer, error) {
	buf, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	return conversion.Normalize(buf)
}

func thresholdCmd(_ context.Context, args []string, stdout io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("threshold", flag.ContinueOnError)
	withMetrics := fs.Bool("metrics", false, "also score the Otsu binarization")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	gray, err := loadGray(rest[0])
	if err != nil {
		return err
	}
	t, err := threshold.Otsu(gray)
	if err != nil {
		return err
	}
	log.Debug("Threshold", "otsu threshold computed", map[string]interface{}{
		"input":     rest[0],
		"threshold": t,
	})
	if _, err := fmt.Fprintln(stdout, t); err != nil || !*withMetrics {
		return err
	}

	out, err := threshold.Binarize(gray, t)
	if err != nil {
		return err
	}
	m, err := metrics.Evaluate(gray, out, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, m)
	return err
}

func binarizeCmd(_ context.Context, args []string, stdout io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("binarize", flag.ContinueOnError)
	fixed := fs.Int("t", -1, "fixed threshold 0-255; negative selects Otsu")
	withMetrics := fs.Bool("metrics", false, "print segmentation quality scores")
	referencePath := fs.String("reference", "", "ground truth mask for the scores; default is the Otsu binarization")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}
	if *fixed > 255 {
		return fmt.Errorf("binarize: threshold must be between 0 and 255, got: %d", *fixed)
	}

	gray, err := loadGray(rest[0])
	if err != nil {
		return err
	}

	var out *pixel.Buffer
	if *fixed < 0 {
		out, err = threshold.MeanBinarize(gray)
	} else {
		out, err = threshold.Binarize(gray, uint8(*fixed))
	}
	if err != nil {
		return err
	}

	var reference *pixel.Buffer
	if *referencePath != "" {
		if reference, err = loadGray(*referencePath); err != nil {
			return err
		}
	}
	m, err := metrics.Evaluate(gray, out, reference)
	if err != nil {
		return err
	}
	log.Info("Binarize", "segmentation scored", m.Fields())
	if *withMetrics {
		if _, err := fmt.Fprintln(stdout, m); err != nil {
			return err
		}
	}
	return save(log, rest[1], out)
}

func borderCmd(_ context.Context, args []string, _ io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("border", flag.ContinueOnError)
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	gray, err := loadGray(rest[0])
	if err != nil {
		return err
	}
	out, err := canvas.AddBorder(gray)
	if err != nil {
		return err
	}
	return save(log, rest[1], out)
}

func concatCmd(_ context.Context, args []string, _ io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("concat", flag.ContinueOnError)
	vertical := fs.Bool("vertical", false, "stack the second image below the first")
	rest, err := parse(fs, args, 3)
	if err != nil {
		return err
	}

	a, err := imageio.Load(rest[0])
	if err != nil {
		return err
	}
	b, err := imageio.Load(rest[1])
	if err != nil {
		return err
	}

	dir := canvas.Horizontal
	if *vertical {
		dir = canvas.Vertical
	}
	out, err := canvas.Concatenate(a, b, dir)
	if err != nil {
		return err
	}
	return save(log, rest[2], out)
}

func convertCmd(_ context.Context, args []string, _ io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	gray, err := loadGray(rest[0])
	if err != nil {
		return err
	}
	return save(log, rest[1], gray)
}

func batchCmd(ctx context.Context, args []string, stdout io.Writer, log logger.Logger) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML configuration file")
	rest, err := parse(fs, args, -1)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("batch: no input files")
	}

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
		if log, err = newLogger(cfg.Log); err != nil {
			return err
		}
	}

	runner, err := pipeline.NewRunner(cfg, log)
	if err != nil {
		return err
	}
	results, err := runner.Run(ctx, rest)
	for _, res := range results {
		if res.Output != "" {
			fmt.Fprintf(stdout, "%s -> %s (%dx%d)", res.Input, res.Output, res.Width, res.Height)
			if res.Metrics != nil {
				fmt.Fprintf(stdout, " iou=%.4f misclassification=%.4f", res.Metrics.IoU, res.Metrics.MisclassificationError)
			}
			fmt.Fprintln(stdout)
		}
	}
	return err
}

func save(log logger.Logger, path string, buf *pixel.Buffer) error {
	if err := imageio.Save(path, buf); err != nil {
		return err
	}
	log.Info("Main", "image written", map[string]interface{}{
		"output": path,
		"width":  buf.Width(),
		"height": buf.Height(),
	})
	return nil
}
