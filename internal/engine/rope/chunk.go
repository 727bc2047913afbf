package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage when a rope is
// assembled by a Builder. FromString never splits its input.
const (
	// MinChunkSize is the smallest chunk size a Builder accepts.
	MinChunkSize = 16

	// DefaultChunkSize is the preferred chunk size when building.
	DefaultChunkSize = 192
)

// Chunk is the storage unit held by a leaf. It is immutable once created and
// cheap to copy: substrings share the backing bytes of the original.
type Chunk struct {
	data  string
	lines uint32
}

// NewChunk creates a chunk from a string.
// The newline count is computed eagerly.
func NewChunk(s string) Chunk {
	return Chunk{
		data:  s,
		lines: CountLines(s),
	}
}

// String returns the chunk's text. No copy is made.
func (c Chunk) String() string {
	return c.data
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// Lines returns the number of newlines in the chunk.
func (c Chunk) Lines() uint32 {
	return c.lines
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Substr returns the n bytes starting at idx as a new chunk.
// It panics if the span is out of range.
func (c Chunk) Substr(idx, n int) Chunk {
	if idx == 0 && n == len(c.data) {
		return c
	}
	return NewChunk(c.data[idx : idx+n])
}

// Split splits a chunk at byte offset, returning two chunks.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks splits a string into chunks of roughly target bytes.
func splitIntoChunks(s string, target int) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if target < MinChunkSize {
		target = MinChunkSize
	}
	limit := target + target/3
	if len(s) <= limit {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= limit {
			chunks = append(chunks, NewChunk(remaining))
			break
		}
		split := findUTF8Boundary(remaining, target)
		chunks = append(chunks, NewChunk(remaining[:split]))
		remaining = remaining[split:]
	}
	return chunks
}

// findUTF8Boundary finds a valid UTF-8 boundary near the target position.
// It prefers splitting after a newline if one exists nearby.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	window := target / 6
	searchStart := max(target-window, 1)
	searchEnd := min(target+window, len(s))

	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos < len(s) && !isUTF8Start(s[pos]) {
		pos++
	}
	if pos > target+utf8.UTFMax || pos >= len(s) {
		pos = target
		for pos > 0 && !isUTF8Start(s[pos]) {
			pos--
		}
	}
	if pos == 0 {
		// Never produce an empty chunk.
		return target
	}
	return pos
}

// isUTF8Start returns true if the byte is the start of a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	// Continuation bytes look like 10xxxxxx.
	return b&0xC0 != 0x80
}
