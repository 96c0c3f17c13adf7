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

// Package ticket implements a FIFO ticket lock: the deli-counter lock,
// where each arriving goroutine draws a ticket and waits for its number to
// be called.
//
// Acquisition order is strictly FIFO in the order each goroutine's
// fetch-add completed. Under contention, every waiter's spin reads
// invalidate on each release (they all watch the same serving counter),
// which limits scalability past roughly eight contending cores, but it
// keeps worst-case wait bounded by the number of goroutines ahead of you,
// unlike spinlock or tatas.
package ticket

import "github.com/nbtaylor/spinprims/atomicword"

// Lock is a FIFO ticket lock. The zero value is an unlocked lock with an
// empty queue.
type Lock struct {
	nextTicket atomicword.Cell
	serving    atomicword.Cell
}

// New returns a new, unlocked Lock.
func New() *Lock { return &Lock{} }

// Acquire blocks until the calling goroutine's ticket is being served.
func (l *Lock) Acquire() {
	myTicket := l.nextTicket.FetchAdd(1)
	for l.serving.LoadAcquire() != myTicket {
		atomicword.Pause()
	}
}

// TryAcquire attempts to acquire the lock without blocking. It reports
// whether the lock was acquired. There is a small window in which this can
// spuriously fail under contention (if a ticket is drawn and then the
// serving counter changes before the draw is verified); this is a
// liveness cost only, never a correctness hazard — a failed TryAcquire
// never draws a ticket that is left unclaimed.
func (l *Lock) TryAcquire() bool {
	next := l.nextTicket.Load()
	serving := l.serving.Load()
	if next != serving {
		return false
	}
	if l.nextTicket.CompareAndSwapBool(next, next+1) {
		return l.serving.LoadAcquire() == next
	}
	return false
}

// Release serves the next ticket, waking whichever goroutine drew it.
func (l *Lock) Release() {
	serving := l.serving.Load()
	l.serving.StoreRelease(serving + 1)
}
