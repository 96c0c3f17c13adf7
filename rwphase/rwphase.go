// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package rwphase implements a phase-fair reader-writer lock: readers and
// writers alternate in phases, so neither class can starve the other the
// way rwlock's writer preference lets writers starve readers.
//
// On writer entry, the reader gate closes (read_phase goes to 0), existing
// readers drain, and the writer takes the exclusive writer_active slot,
// then waits for any reader that slipped in before the slot was taken. On
// writer exit, the writer_active slot is released and the reader gate
// reopens (read_phase goes back to 1) before the writer is considered done
// — so at most one writer's worth of readers ever waits behind a given
// writer, bounding wait for both classes.
//
// A fresh Lock initializes read_phase to 1 (readers admitted immediately),
// not 0. spec.md's source material leaves this ambiguous: a literal port
// of the original initializes read_phase to 0, under which the very first
// reader cannot enter until some writer has released, which reads as an
// initialization bug rather than intended bootstrap behavior. This
// implementation takes the position that a fresh, uncontended lock should
// never block its first reader.
package rwphase

import "github.com/nbtaylor/spinprims/atomicword"

const (
	closed uint32 = 0
	open   uint32 = 1

	inactive uint32 = 0
	active   uint32 = 1
)

// Lock is a phase-fair reader-writer lock. New must be used to construct
// one; the zero value has read_phase at 0 and is not ready to admit
// readers (see package doc).
type Lock struct {
	readers      atomicword.Cell
	writers      atomicword.Cell
	writerActive atomicword.Cell
	readPhase    atomicword.Cell
}

// New returns a new, unlocked Lock with its reader gate already open.
func New() *Lock {
	l := &Lock{}
	l.readPhase.Store(open)
	return l
}

// RAcquire blocks until the calling goroutine holds the lock for reading.
func (l *Lock) RAcquire() {
	for {
		if l.writerActive.Load() == inactive && l.readPhase.Load() == open {
			old := l.readers.Load()
			if l.readers.CompareAndSwapBool(old, old+1) {
				if l.writerActive.Load() == inactive {
					return
				}
				l.readers.Decrement()
			}
		}
		atomicword.Pause()
	}
}

// RTryAcquire attempts to acquire the lock for reading without blocking.
// It reports whether the lock was acquired.
func (l *Lock) RTryAcquire() bool {
	if l.writerActive.Load() != inactive || l.readPhase.Load() != open {
		return false
	}
	old := l.readers.Load()
	if !l.readers.CompareAndSwapBool(old, old+1) {
		return false
	}
	if l.writerActive.Load() == inactive {
		return true
	}
	l.readers.Decrement()
	return false
}

// RRelease releases a reader's hold on the lock.
func (l *Lock) RRelease() {
	l.readers.Decrement()
}

// WAcquire blocks until the calling goroutine holds the lock exclusively.
func (l *Lock) WAcquire() {
	l.writers.Increment()
	l.readPhase.Store(closed)

	for l.readers.Load() != 0 {
		atomicword.Pause()
	}

	for l.writerActive.Exchange(active) != inactive {
		atomicword.Pause()
	}
	// A reader that passed the gate check before it closed (or while a
	// previous writer's release had reopened it) may have entered after
	// the drain above; with writerActive now set, no further reader can
	// stay, so wait once more for those to leave.
	for l.readers.Load() != 0 {
		atomicword.Pause()
	}
	l.writers.Decrement()
}

// WTryAcquire attempts to acquire the lock for writing without blocking.
// It reports whether the lock was acquired; on failure it leaves the
// reader gate exactly as it found it.
func (l *Lock) WTryAcquire() bool {
	if l.readers.Load() != 0 {
		return false
	}
	if l.writerActive.Exchange(active) != inactive {
		return false
	}
	if l.readers.Load() != 0 {
		l.writerActive.StoreRelease(inactive)
		return false
	}
	l.readPhase.Store(closed)
	return true
}

// WRelease releases the writer's exclusive hold on the lock and reopens
// the reader gate.
func (l *Lock) WRelease() {
	l.writerActive.StoreRelease(inactive)
	l.readPhase.Store(open)
}
