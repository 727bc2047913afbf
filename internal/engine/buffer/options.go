package buffer

import (
	"log/slog"

	"github.com/petelliott/pi2/internal/engine/rope"
)

// DefaultRebalanceDepth is the rope depth past which edits trigger a
// rebalance.
const DefaultRebalanceDepth = 64

// Option configures a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLF sets Unix-style line endings.
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF sets Windows-style line endings.
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithDetectedLineEnding sets the buffer's line ending style based on content.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}

// WithLogger sets the logger used for edit and rebalance events.
// A nil logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Buffer) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		b.logger = logger
	}
}

// WithRebalanceDepth sets the rope depth that triggers a rebalance after an
// edit. Zero disables automatic rebalancing.
func WithRebalanceDepth(depth int) Option {
	return func(b *Buffer) {
		if depth < 0 {
			depth = 0
		}
		b.rebalanceDepth = depth
	}
}

// WithChunkSize sets the target leaf size used when loading content.
// Values below rope.MinChunkSize are raised to it.
func WithChunkSize(size int) Option {
	return func(b *Buffer) {
		b.chunkSize = max(size, rope.MinChunkSize)
	}
}

// WithContent sets the initial content. Line endings are normalized.
func WithContent(text string) Option {
	return func(b *Buffer) {
		b.initial = &text
	}
}

// WithMetrics records edits, rejections and rebalances in m.
func WithMetrics(m *Metrics) Option {
	return func(b *Buffer) {
		b.metrics = m
	}
}
