package main

import (
	"errors"
	"os"

	"github.com/mnafees/chopper/internal/config"
	"github.com/mnafees/chopper/internal/options"
	"github.com/mnafees/chopper/internal/statsview"
	"github.com/mnafees/chopper/pkg/sdl"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	opts, err := options.ParseFlags("chopper", os.Args[1:])
	logger := config.CreateLogger(opts)
	if err != nil {
		var usageErr *options.UsageError
		if errors.As(err, &usageErr) {
			logger.Error(usageErr.Error(), nil)
			usageErr.ShowUsage(os.Stderr)
		}
		os.Exit(1)
	}

	vm, err := config.CreateVM(opts)
	if err != nil {
		logger.Fatal("Loading program failed", log.Err(err))
	}
	if opts.StatsView {
		statsview.Launch(logger)
	}

	io := sdl.NewIO(vm, logger, opts)
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		io.Destroy()
		logger.Fatal("Setting up window failed", log.Err(err))
	}

	err = io.Loop()
	io.Destroy()
	if err != nil {
		logger.Error("Emulation stopped", err)
		os.Exit(1)
	}
}
