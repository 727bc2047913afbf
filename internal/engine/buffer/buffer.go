package buffer

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/petelliott/pi2/internal/engine/rope"
)

// Buffer wraps a Rope with validated editing.
// It provides the primary interface for text manipulation.
// All methods are thread-safe.
type Buffer struct {
	mu             sync.RWMutex
	rope           rope.Rope
	revisionID     RevisionID
	lineEnding     LineEnding
	chunkSize      int
	rebalanceDepth int
	logger         *slog.Logger
	metrics        *Metrics

	initial *string
}

// NewBuffer creates a new buffer. It is empty unless WithContent is given.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		rope:           rope.New(),
		revisionID:     NewRevisionID(),
		lineEnding:     LineEndingLF,
		chunkSize:      rope.DefaultChunkSize,
		rebalanceDepth: DefaultRebalanceDepth,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.initial != nil {
		b.rope = b.build(*b.initial)
		b.initial = nil
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	return NewBuffer(append(opts, WithContent(s))...)
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything before normalizing: a CRLF pair may straddle two reads.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read buffer content")
	}
	return NewBufferFromString(string(data), opts...), nil
}

// build normalizes text and cuts it into a rope with the buffer's chunk size.
func (b *Buffer) build(text string) rope.Rope {
	return b.fragment(b.lineEnding.normalize(text))
}

// Read Operations

// Rope returns the current rope. Ropes are immutable, so the result is safe
// to use after the buffer changes.
func (b *Buffer) Rope() rope.Rope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope
}

// Text returns the full buffer content as a string.
// For large buffers, prefer TextRange or the rope iterators.
func (b *Buffer) Text() string {
	return b.Rope().String()
}

// TextRange returns text in the byte range [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	r := b.Rope()
	if err := checkRange(start, end, r.Len()); err != nil {
		return "", err
	}
	return r.CharSlice(NewRange(start, end).ropeRange()).String(), nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return b.Rope().Len()
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines in the buffer.
// An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	return b.Rope().LineCount()
}

// LineText returns the text of a line without its line ending.
func (b *Buffer) LineText(line uint32) (string, error) {
	r := b.Rope()
	if line >= r.LineCount() {
		return "", errors.Wrapf(ErrOffsetOutOfRange, "line %d of %d", line, r.LineCount())
	}
	text := r.Line(line).String()
	return strings.TrimSuffix(text, b.LineEnding().Sequence()), nil
}

// LineStartOffset returns the byte offset where a line begins.
func (b *Buffer) LineStartOffset(line uint32) (ByteOffset, error) {
	r := b.Rope()
	if line >= r.LineCount() {
		return 0, errors.Wrapf(ErrOffsetOutOfRange, "line %d of %d", line, r.LineCount())
	}
	return r.LineStart(line), nil
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// RevisionID returns the current revision.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Write Operations

// Insert inserts text at the given offset and returns the offset just past
// the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(NewInsert(offset, text))
	if err != nil {
		return offset, err
	}
	return res.NewRange.End, nil
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.ApplyEdit(NewDelete(start, end))
	return err
}

// Replace replaces [start, end) with text and returns the offset just past
// the new text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(NewReplace(start, end, text))
	if err != nil {
		return start, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit and reports what changed.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkEdit(edit.Range); err != nil {
		b.logger.Warn("edit rejected",
			slog.String("edit", edit.String()),
			slog.Any("error", err))
		b.metrics.observeRejected()
		return EditResult{}, err
	}

	return b.apply(edit), nil
}

// ApplyEdits applies several edits atomically. Edits must be sorted by
// descending start offset and must not overlap, so that applying one never
// shifts the offsets of the next. Either all edits are applied or none.
func (b *Buffer) ApplyEdits(edits []Edit) ([]EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, edit := range edits {
		err := b.checkEdit(edit.Range)
		if err != nil {
			err = errors.WithMessagef(err, "edit %d", i)
		} else if i > 0 && edit.Range.End > edits[i-1].Range.Start {
			err = errors.Wrapf(ErrEditsOverlap, "edit %d %s after %s",
				i, edit.Range, edits[i-1].Range)
		}
		if err != nil {
			b.logger.Warn("edit batch rejected",
				slog.Int("edits", len(edits)),
				slog.Any("error", err))
			b.metrics.observeRejected()
			return nil, err
		}
	}

	results := make([]EditResult, 0, len(edits))
	for _, edit := range edits {
		results = append(results, b.apply(edit))
	}
	return results, nil
}

// apply performs a validated edit. Caller must hold the write lock.
func (b *Buffer) apply(edit Edit) EditResult {
	text := b.lineEnding.normalize(edit.NewText)
	old := b.rope.CharSlice(edit.Range.ropeRange())

	if !edit.Range.IsEmpty() || text != "" {
		next := b.rope.Delete(edit.Range.ropeRange())
		if text != "" {
			next = next.Insert(edit.Range.Start, b.fragment(text))
		}
		b.rope = b.maybeRebalance(next)
		b.revisionID = NewRevisionID()
		b.metrics.observeEdit(edit, b.rope.Depth())
	}

	result := EditResult{
		OldRange: edit.Range,
		NewRange: NewRange(edit.Range.Start, edit.Range.Start+ByteOffset(len(text))),
		OldText:  old.String(),
		Delta:    int64(len(text)) - int64(edit.Range.Len()),
		Revision: b.revisionID,
	}

	b.logger.Debug("edit applied",
		slog.String("edit", edit.String()),
		slog.Int64("delta", result.Delta),
		slog.Uint64("revision", uint64(result.Revision)),
		slog.Uint64("len", uint64(b.rope.Len())))

	return result
}

// fragment turns already-normalized inserted text into a rope.
func (b *Buffer) fragment(text string) rope.Rope {
	if len(text) <= b.chunkSize {
		return rope.FromString(text)
	}
	builder := rope.NewBuilder(b.chunkSize)
	builder.WriteString(text)
	return builder.Build()
}

// maybeRebalance rebalances r when its depth passes the configured limit.
func (b *Buffer) maybeRebalance(r rope.Rope) rope.Rope {
	if b.rebalanceDepth == 0 || r.IsBalanced(b.rebalanceDepth) {
		return r
	}
	depth := r.Depth()
	balanced := r.Rebalance()
	b.metrics.observeRebalance()
	b.logger.Debug("rope rebalanced",
		slog.Int("depth_before", depth),
		slog.Int("depth_after", balanced.Depth()),
		slog.Int("leaves", balanced.LeafCount()))
	return balanced
}

// Snapshot returns an immutable view of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return newSnapshot(b.rope, b.revisionID, b.lineEnding)
}

// checkEdit validates an edit range against the current rope. In a CRLF
// buffer neither end may fall between the '\r' and '\n' of a line ending.
// Caller must hold the lock.
func (b *Buffer) checkEdit(rg Range) error {
	if err := checkRange(rg.Start, rg.End, b.rope.Len()); err != nil {
		return err
	}
	if b.lineEnding != LineEndingCRLF {
		return nil
	}
	for _, offset := range []ByteOffset{rg.Start, rg.End} {
		if splitsLineEnding(b.rope, offset) {
			return errors.Wrapf(ErrOffsetOutOfRange, "offset %d splits a CRLF line ending", offset)
		}
	}
	return nil
}

// splitsLineEnding reports whether offset sits right after a '\r' and right
// before a '\n'.
func splitsLineEnding(r rope.Rope, offset ByteOffset) bool {
	if offset == 0 {
		return false
	}
	if prev, ok := r.ByteAt(offset - 1); !ok || prev != '\r' {
		return false
	}
	next, ok := r.ByteAt(offset)
	return ok && next == '\n'
}

// checkRange validates [start, end) against a buffer of length total.
func checkRange(start, end, total ByteOffset) error {
	if start > end {
		return errors.Wrapf(ErrRangeInvalid, "range [%d:%d)", start, end)
	}
	if end > total {
		return errors.Wrapf(ErrOffsetOutOfRange, "range [%d:%d) in buffer of %d bytes", start, end, total)
	}
	return nil
}
