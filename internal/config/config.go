// Package config handles logger and VM setup shared by the frontends.
package config

import (
	"github.com/mnafees/chopper/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the given command line options.
// Tracing implies debug output and adds the source position of every
// message, quiet mode only reports errors and wins over both.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	case opts.Trace:
		cfg.Level = log.DebugLevel
		cfg.CallerInfo = true
	case opts.Debug:
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}
