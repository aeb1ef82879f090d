// Package rpclog is the shared logging subsystem every binary in this
// module wires its packages' loggers through: a single rotating-file
// backend, with one btclog.Logger per subsystem tag handed out of it.
package rpclog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// Backend owns the on-disk rotating log file and hands out per-subsystem
// loggers backed by it.
type Backend struct {
	rotator *rotator.Rotator
	backend *btclog.Backend
}

// fileWriter adapts *rotator.Rotator to io.Writer.
type fileWriter struct {
	r *rotator.Rotator
}

func (w fileWriter) Write(p []byte) (int, error) {
	return len(p), w.r.Write(p)
}

// New opens a rotating log file at logFile (rolled at 10 MiB, keeping
// three prior rolls) and returns a Backend ready to hand out loggers.
func New(logFile string) (*Backend, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return nil, fmt.Errorf("opening log rotator: %w", err)
	}

	return &Backend{
		rotator: r,
		backend: btclog.NewBackend(fileWriter{r: r}),
	}, nil
}

// Logger returns a logger tagged with subsystem, defaulted to
// btclog.LevelInfo.
func (b *Backend) Logger(subsystem string) btclog.Logger {
	l := b.backend.Logger(subsystem)
	l.SetLevel(btclog.LevelInfo)
	return l
}

// Close flushes and closes the underlying rotator.
func (b *Backend) Close() error {
	return b.rotator.Close()
}

// ParseLevel resolves a level name to a btclog.Level, defaulting to
// LevelInfo for an unrecognized name.
func ParseLevel(name string) btclog.Level {
	l, ok := btclog.LevelFromString(name)
	if !ok {
		return btclog.LevelInfo
	}
	return l
}
