// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where diagnostics go.
type Options struct {
	// Verbose writes debug-level JSON lines to File.
	Verbose bool
	// File overrides the verbose log path. Defaults to /tmp/ideas_<date>.log.
	File string
	// Quiet drops the stderr sink, for full-screen modes.
	Quiet bool
}

// DefaultFile returns the verbose log path for today.
func DefaultFile() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("ideas_%s.log", time.Now().Format("2006-01-02")))
}

// New builds a logger. Soft failures are logged at warn level, so
// non-verbose runs still surface them on stderr.
func New(opts Options) (*zap.Logger, error) {
	var cores []zapcore.Core

	if !opts.Quiet {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.TimeKey = ""
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.Lock(os.Stderr),
			zapcore.WarnLevel,
		))
	}

	if opts.Verbose {
		path := opts.File
		if path == "" {
			path = DefaultFile()
		}
		//nolint:gosec // G304: path comes from the user's own config
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f),
			zapcore.DebugLevel,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}
