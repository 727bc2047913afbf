package buffer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/petelliott/pi2/internal/engine/rope"
)

// Snapshot is an immutable view of the buffer at a point in time.
// It shares structure with the buffer, so taking one is O(1) and holding one
// never blocks writers.
type Snapshot struct {
	id         uuid.UUID
	rope       rope.Rope
	revisionID RevisionID
	lineEnding LineEnding
}

func newSnapshot(r rope.Rope, rev RevisionID, le LineEnding) *Snapshot {
	return &Snapshot{
		id:         uuid.New(),
		rope:       r,
		revisionID: rev,
		lineEnding: le,
	}
}

// ID returns a value unique to this snapshot. Two snapshots of the same
// revision still have different IDs.
func (s *Snapshot) ID() uuid.UUID {
	return s.id
}

// RevisionID returns the revision this snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// Rope returns the snapshot's rope.
func (s *Snapshot) Rope() rope.Rope {
	return s.rope
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.rope.String()
}

// TextRange returns text in the byte range [start, end).
func (s *Snapshot) TextRange(start, end ByteOffset) (string, error) {
	if err := checkRange(start, end, s.rope.Len()); err != nil {
		return "", err
	}
	return s.rope.CharSlice(NewRange(start, end).ropeRange()).String(), nil
}

// Len returns the byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return s.rope.Len()
}

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() uint32 {
	return s.rope.LineCount()
}

// LineText returns the text of a line without its line ending.
func (s *Snapshot) LineText(line uint32) (string, error) {
	if line >= s.rope.LineCount() {
		return "", errors.Wrapf(ErrOffsetOutOfRange, "line %d of %d", line, s.rope.LineCount())
	}
	return strings.TrimSuffix(s.rope.Line(line).String(), s.lineEnding.Sequence()), nil
}

// Equal reports whether two snapshots hold the same text.
func (s *Snapshot) Equal(other *Snapshot) bool {
	return s.rope.Equal(other.rope)
}
