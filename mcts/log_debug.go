//go:build debug

package mcts

import (
	"bytes"
	"sync"

	"github.com/rs/zerolog"
)

// syncBuffer serializes writes from concurrent playout goroutines onto the
// shared trace buffer; zerolog.Logger itself is safe to share across
// goroutines but the bytes.Buffer it writes into is not.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// lumberjack is the debug-build trace sink. Release builds use the zero-cost
// no-op in log_release.go; this variant buffers structured log lines behind
// a zerolog.Logger so a caller can retrieve them with Log() for
// post-mortem inspection of a search, the same role the teacher's
// build-tagged lumberjack buffer plays for Go-board search traces.
type lumberjack struct {
	buf    *syncBuffer
	logger zerolog.Logger
}

func makeLumberjack() lumberjack {
	buf := new(syncBuffer)
	return lumberjack{
		buf:    buf,
		logger: zerolog.New(buf).With().Timestamp().Logger(),
	}
}

func (l lumberjack) log(msg string, args ...interface{}) {
	l.logger.Debug().Msgf(msg, args...)
}

func (l lumberjack) Log() string { return l.buf.String() }

func (l lumberjack) Reset() { l.buf.Reset() }

func assertFail(err error) { panic(err) }
