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

// Package tatas implements a test-and-test-and-set spinlock: a TAS lock
// with a relaxed read gate before each exchange attempt.
//
// Under contention, a plain TAS lock has every waiter repeatedly issue a
// cache-invalidating exchange, which floods the coherence fabric. TATAS
// instead has waiters spin on a relaxed load first, which only shares the
// lock's cache line rather than invalidating it on every other core, and
// only attempts the exchange once the load observes the lock free. This
// costs one extra read per attempt but dramatically reduces coherence
// traffic under contention; ordering guarantees are identical to TAS
// (unordered, starvation possible).
package tatas

import "github.com/nbtaylor/spinprims/atomicword"

const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// Lock is a test-and-test-and-set spinlock. The zero value is unlocked.
type Lock struct {
	locked atomicword.Cell
}

// New returns a new, unlocked Lock.
func New() *Lock { return &Lock{} }

// Acquire blocks until the lock is held by the calling goroutine.
func (l *Lock) Acquire() {
	for {
		if l.locked.Load() == unlocked {
			if l.locked.Exchange(locked) == unlocked {
				return
			}
		}
		atomicword.Pause()
	}
}

// TryAcquire attempts to acquire the lock without blocking. It reports
// whether the lock was acquired.
func (l *Lock) TryAcquire() bool {
	if l.locked.Load() != unlocked {
		return false
	}
	return l.locked.Exchange(locked) == unlocked
}

// Release releases the lock. Calling Release without holding the lock, or
// releasing twice in a row, is a precondition violation with undefined
// results.
func (l *Lock) Release() {
	l.locked.StoreRelease(unlocked)
}
