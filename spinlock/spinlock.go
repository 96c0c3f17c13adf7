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

// Package spinlock implements a test-and-set (TAS) spinlock: the simplest
// possible mutual-exclusion primitive built on a single atomic exchange.
//
// It offers no fairness guarantee: under contention any waiter may win the
// next exchange, so a thread can in principle starve indefinitely. Use
// ticket or mcs instead when FIFO ordering matters. TAS is appropriate when
// critical sections are extremely short and contention is low, where its
// single-instruction acquire path outperforms the bookkeeping a fair lock
// requires.
package spinlock

import "github.com/nbtaylor/spinprims/atomicword"

const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// Lock is a test-and-set spinlock. The zero value is an unlocked lock.
type Lock struct {
	locked atomicword.Cell
}

// New returns a new, unlocked Lock.
func New() *Lock { return &Lock{} }

// Acquire blocks until the lock is held by the calling goroutine. Callers
// must not call Acquire again while already holding the lock: this lock is
// not reentrant.
func (l *Lock) Acquire() {
	for l.locked.Exchange(locked) != unlocked {
		atomicword.Pause()
	}
}

// TryAcquire attempts to acquire the lock without blocking. It reports
// whether the lock was acquired.
func (l *Lock) TryAcquire() bool {
	return l.locked.Exchange(locked) == unlocked
}

// Release releases the lock. Calling Release without holding the lock, or
// releasing twice in a row, is a precondition violation with undefined
// results.
func (l *Lock) Release() {
	l.locked.StoreRelease(unlocked)
}
