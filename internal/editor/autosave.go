package editor

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAutosaveInterval is the snapshot period when none is configured.
const DefaultAutosaveInterval = 10 * time.Second

// Autosaver periodically writes a snapshot of a buffer to a file.
type Autosaver struct {
	Path     string
	Interval time.Duration
	Snapshot func() string
	Logger   *zerolog.Logger
}

// NewAutosaver snapshots buf into path every interval.
func NewAutosaver(path string, interval time.Duration, buf *Buffer, logger *zerolog.Logger) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Autosaver{Path: path, Interval: interval, Snapshot: buf.Text, Logger: logger}
}

// Run writes a snapshot immediately, then once per interval until ctx is
// done, and a final one before returning. Write failures are logged and do
// not stop the loop.
func (a *Autosaver) Run(ctx context.Context) {
	a.write()

	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.write()
			return
		case <-ticker.C:
			a.write()
		}
	}
}

func (a *Autosaver) write() {
	if err := os.WriteFile(a.Path, []byte(a.Snapshot()), 0o644); err != nil {
		a.Logger.Warn().Err(err).Str("path", a.Path).Msg("autosave failed")
		return
	}
	a.Logger.Debug().Str("path", a.Path).Msg("autosaved")
}
