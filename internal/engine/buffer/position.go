package buffer

import (
	"sync/atomic"

	"github.com/petelliott/pi2/internal/engine/rope"
)

// ByteOffset represents a byte position in the buffer.
type ByteOffset = rope.ByteOffset

// RevisionID identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter atomic.Uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}
