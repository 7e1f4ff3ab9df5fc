package btverify

import (
	"os"

	"github.com/rs/zerolog"
)

// LogReporter is the default Reporter, backed by zerolog. Diagnostics are
// logged at warn level (one line per finding, spec.md §7's "one or more
// diagnostic messages"); progress ticks are debug level and never block
// the walk.
type LogReporter struct {
	log zerolog.Logger
}

// NewLogReporter builds a Reporter writing structured lines to w. Pass
// os.Stderr for CLI-style output, or another *os.File (such as the write
// end of an os.Pipe) for capture in tests.
func NewLogReporter(w *os.File) *LogReporter {
	return &LogReporter{log: zerolog.New(w).With().Timestamp().Str("component", "btverify").Logger()}
}

func (r *LogReporter) Errorf(format string, args ...interface{}) {
	r.log.Warn().Msgf(format, args...)
}

func (r *LogReporter) Progress(counter uint64) {
	r.log.Debug().Uint64("pages_visited", counter).Msg("verify progress")
}
