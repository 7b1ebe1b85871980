// Command pixelops binarizes, pads and concatenates grayscale images.
//
//	pixelops threshold [-metrics] IN
//	pixelops binarize [-t N] [-metrics] [-reference MASK] IN OUT
//	pixelops border IN OUT
//	pixelops concat [-vertical] A B OUT
//	pixelops convert IN OUT
//	pixelops batch [-config FILE] IN...
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pixelops/internal/config"
	"pixelops/internal/logger"
)

const AppName = "pixelops"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := logger.ParseLevel(determineLogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(2)
	}
	log := logger.NewConsoleLogger(level)

	if err := run(ctx, os.Args[1:], os.Stdout, log); err != nil {
		log.Error("Main", err, map[string]interface{}{"args": os.Args[1:]})
		os.Exit(1)
	}
}

// determineLogLevel reads LOG_LEVEL, falling back to debug when DEBUG=1.
func determineLogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	if os.Getenv("DEBUG") == "1" {
		return "debug"
	}
	return "info"
}

// newLogger builds the logger described by a [log] configuration section:
// human-readable console output, or JSON lines on stderr.
func newLogger(cfg config.LogConfig) (logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Console {
		return logger.NewConsoleLogger(level), nil
	}
	return logger.NewZerolog(os.Stderr, level), nil
}

func run(ctx context.Context, args []string, stdout io.Writer, log logger.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s threshold|binarize|border|concat|convert|batch ...", AppName)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd(ctx, args[1:], stdout, log)
}
