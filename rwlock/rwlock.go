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

// Package rwlock implements a writer-preferring spin-based reader-writer
// lock: any number of readers may hold the lock concurrently, but a writer
// announcing intent blocks every new reader until it has run.
//
// This is intentionally unfair to readers: under continuous writer
// arrival, readers can starve indefinitely, because a writer that has
// already set the writer flag forces any reader whose increment raced
// against it to back off and retry rather than let the read proceed. Use
// rwphase instead when bounded alternation between reader and writer
// phases is required.
package rwlock

import "github.com/nbtaylor/spinprims/atomicword"

const (
	free  uint32 = 0
	taken uint32 = 1
)

// Lock is a writer-preferring reader-writer lock. The zero value is an
// unlocked lock with no readers.
type Lock struct {
	readers atomicword.Cell
	writer  atomicword.Cell
}

// New returns a new, unlocked Lock.
func New() *Lock { return &Lock{} }

// RAcquire blocks until the calling goroutine holds the lock for reading.
// Any number of readers may hold the lock simultaneously, but a pending or
// active writer blocks new readers from entering (see package doc).
func (l *Lock) RAcquire() {
	for {
		if l.writer.Load() == free {
			old := l.readers.Load()
			if l.readers.CompareAndSwapBool(old, old+1) {
				if l.writer.Load() == free {
					return
				}
				// A writer appeared between our CAS and this check: back
				// off so it is not starved, then retry.
				l.readers.Decrement()
			}
		}
		atomicword.Pause()
	}
}

// RTryAcquire attempts to acquire the lock for reading without blocking.
// It reports whether the lock was acquired.
func (l *Lock) RTryAcquire() bool {
	if l.writer.Load() != free {
		return false
	}
	old := l.readers.Load()
	if !l.readers.CompareAndSwapBool(old, old+1) {
		return false
	}
	if l.writer.Load() == free {
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
	for l.writer.Exchange(taken) != free {
		atomicword.Pause()
	}
	for l.readers.Load() != 0 {
		atomicword.Pause()
	}
}

// WTryAcquire attempts to acquire the lock for writing without blocking.
// It reports whether the lock was acquired.
func (l *Lock) WTryAcquire() bool {
	if l.writer.Exchange(taken) != free {
		return false
	}
	if l.readers.Load() != 0 {
		l.writer.StoreRelease(free)
		return false
	}
	return true
}

// WRelease releases the writer's exclusive hold on the lock.
func (l *Lock) WRelease() {
	l.writer.StoreRelease(free)
}
