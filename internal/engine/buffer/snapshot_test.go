package buffer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("Hello")
	snap := b.Snapshot()

	_, err := b.Insert(5, " World")
	require.NoError(t, err)

	assert.Equal(t, "Hello", snap.Text())
	assert.Equal(t, "Hello World", b.Text())
	assert.NotEqual(t, snap.RevisionID(), b.RevisionID())
}

func TestSnapshotOperations(t *testing.T) {
	b := NewBufferFromString("line1\r\nline2", WithCRLF())
	snap := b.Snapshot()

	assert.Equal(t, ByteOffset(12), snap.Len())
	assert.Equal(t, uint32(2), snap.LineCount())

	line, err := snap.LineText(0)
	require.NoError(t, err)
	assert.Equal(t, "line1", line)

	text, err := snap.TextRange(7, 12)
	require.NoError(t, err)
	assert.Equal(t, "line2", text)

	_, err = snap.TextRange(7, 13)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = snap.LineText(2)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestSnapshotIdentity(t *testing.T) {
	b := NewBufferFromString("same")
	a, c := b.Snapshot(), b.Snapshot()

	assert.NotEqual(t, a.ID(), c.ID())
	assert.Equal(t, a.RevisionID(), c.RevisionID())
	assert.True(t, a.Equal(c))

	require.NoError(t, b.Delete(0, 1))
	assert.False(t, a.Equal(b.Snapshot()))
}

func TestBufferConcurrentReadWrite(t *testing.T) {
	const writers, appends = 4, 100

	b := NewBuffer(WithLogger(nil))
	g, _ := errgroup.WithContext(context.Background())

	for range writers {
		g.Go(func() error {
			for range appends {
				// Len and Insert are separate calls, but the offset stays
				// valid because the buffer only grows.
				if _, err := b.Insert(b.Len(), "x"); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for range writers {
		g.Go(func() error {
			for range appends {
				snap := b.Snapshot()
				if snap.Len() != snap.Rope().Len() || int(snap.Len()) != len(snap.Text()) {
					t.Errorf("snapshot length mismatch at revision %d", snap.RevisionID())
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, ByteOffset(writers*appends), b.Len())
}
