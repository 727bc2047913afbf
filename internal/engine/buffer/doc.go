// Package buffer provides a thread-safe text buffer built on top of the rope
// data structure.
//
// A Buffer owns the current version of a document. Every edit validates its
// offsets, builds a new rope from the old one and swaps it in; nothing is
// modified in place. Snapshots are immutable views of one version and stay
// valid however the buffer changes afterwards, which makes them cheap to keep
// around for undo systems or background readers owned by the caller.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")   // "Hello, Beautiful World!"
//	buf.Delete(0, 7)              // "Beautiful World!"
//
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Process text...
//	}()
//
// Unlike the rope primitives, which panic on out-of-range arguments, Buffer
// methods validate first and return ErrOffsetOutOfRange or ErrRangeInvalid.
//
// Trees produced by long one-sided editing sessions grow deep. When the rope
// depth passes the configured threshold the buffer rebalances it; contents
// and query results are unaffected.
package buffer
