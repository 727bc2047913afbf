package rope

import (
	"io"
	"strings"
)

// Builder provides efficient incremental construction of a rope.
// It buffers writes, cuts them into chunks, and arranges the chunks into a
// balanced tree when Build is called.
//
// The zero value is ready to use with DefaultChunkSize.
type Builder struct {
	chunkSize int
	chunks    []Chunk
	buffer    strings.Builder
	totalLen  int
}

// NewBuilder creates a rope builder that cuts text into chunks of roughly
// chunkSize bytes. Zero or negative sizes select DefaultChunkSize; other
// sizes below MinChunkSize are raised to it.
func NewBuilder(chunkSize int) *Builder {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Builder{
		chunkSize: max(chunkSize, MinChunkSize),
		chunks:    make([]Chunk, 0, 64),
	}
}

func (b *Builder) target() int {
	if b.chunkSize == 0 {
		return DefaultChunkSize
	}
	return b.chunkSize
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}

	b.totalLen += len(s)
	b.buffer.WriteString(s)
	b.maybeFlush()
	return len(s), nil
}

// maybeFlush flushes whole chunks once enough text has accumulated.
func (b *Builder) maybeFlush() {
	if b.buffer.Len() >= b.target()*2 {
		b.flushBuffer(false)
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.totalLen++
	err := b.buffer.WriteByte(c)
	b.maybeFlush()
	return err
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	n, err := b.buffer.WriteRune(r)
	b.totalLen += n
	b.maybeFlush()
	return n, err
}

// flushBuffer moves buffered text into chunks. Unless final is set, the
// last partial chunk stays buffered so later writes can extend it; that
// also keeps runes split across writes intact.
func (b *Builder) flushBuffer(final bool) {
	if b.buffer.Len() == 0 {
		return
	}

	s := b.buffer.String()
	b.buffer.Reset()

	newChunks := splitIntoChunks(s, b.target())
	if !final && len(newChunks) > 1 {
		last := newChunks[len(newChunks)-1]
		newChunks = newChunks[:len(newChunks)-1]
		b.buffer.WriteString(last.String())
	}
	b.chunks = append(b.chunks, newChunks...)
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buffer.Reset()
	b.totalLen = 0
}

// Build creates the rope from accumulated data.
// After calling Build, the builder is reset.
func (b *Builder) Build() Rope {
	b.flushBuffer(true)

	leaves := make([]*node, len(b.chunks))
	for i, c := range b.chunks {
		leaves[i] = newLeaf(c)
	}
	b.Reset()

	return Rope{root: buildBalanced(leaves)}
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// FromReader creates a rope from an io.Reader using DefaultChunkSize.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// FromLines creates a rope from a slice of lines.
// Each line will have a newline appended except the last.
func FromLines(lines []string) Rope {
	var b Builder
	for i, line := range lines {
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.Build()
}

// Repeat creates a rope holding s repeated n times. Repetitions share a
// single leaf.
func Repeat(s string, n int) Rope {
	if n <= 0 || len(s) == 0 {
		return New()
	}

	unit := FromString(s)
	leaves := make([]*node, n)
	for i := range leaves {
		leaves[i] = unit.root
	}
	return Rope{root: buildBalanced(leaves)}
}
