package main

import (
	"errors"
	"os"

	"github.com/mnafees/chopper/internal/config"
	"github.com/mnafees/chopper/internal/options"
	"github.com/mnafees/chopper/internal/statsview"
	"github.com/mnafees/chopper/pkg/tty"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := options.ParseFlags("chopper-term", os.Args[1:])
	logger := config.CreateLogger(opts)
	if err != nil {
		var usageErr *options.UsageError
		if errors.As(err, &usageErr) {
			logger.Error(usageErr.Error(), nil)
			usageErr.ShowUsage(os.Stderr)
		}
		return 1
	}

	vm, err := config.CreateVM(opts)
	if err != nil {
		logger.Error("Loading program failed", err)
		return 1
	}
	if opts.StatsView {
		statsview.Launch(logger)
	}

	t := tty.New(vm, logger, opts)
	if err := t.Open(); err != nil {
		logger.Error("Opening terminal failed", err)
		return 1
	}

	err = t.Loop()
	if cerr := t.Close(); cerr != nil {
		logger.Error("Closing terminal failed", cerr)
	}
	if err != nil {
		logger.Error("Emulation stopped", err)
		return 1
	}
	return 0
}
