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

// Package anderson implements an Anderson array lock: a bounded ring of
// per-slot flags, handed out round-robin, so each waiter spins on its own
// cache line instead of sharing one hot word with everyone else.
//
// Ordering is FIFO modulo the slot count: the Nth goroutine to arrive waits
// behind the (N-1)th, same as a ticket lock, but without the single
// hot-line bounce on every release. The cost is a fixed capacity: the
// number of goroutines that may hold or be waiting for the lock at once
// must never exceed the configured slot count, or slots get reused while
// still claimed and the lock silently corrupts. NewLock refuses a slot
// count outside [1, MaxSlots] at construction, but the number of *live
// concurrent participants* using a given Lock is still a caller
// precondition (spec.md §7) this package cannot observe directly.
package anderson

import (
	"errors"

	"github.com/nbtaylor/spinprims/atomicword"
	"golang.org/x/sys/cpu"
)

// MaxSlots bounds the size of a Lock's flag ring, mirroring
// ANDERSON_LOCK_MAX_THREADS in the original C implementation this package
// is ported from.
const MaxSlots = 64

// ErrInvalidSlotCount is returned by NewLock when numSlots is outside
// [1, MaxSlots].
var ErrInvalidSlotCount = errors.New("anderson: slot count must be between 1 and MaxSlots")

const (
	slotEmpty uint32 = 0
	slotReady uint32 = 1
)

// slot is one entry in the flag ring. Every waiter spins on a different
// slot, which only pays off if those slots don't share a cache line with
// their neighbors; CacheLinePad forces each one onto its own line.
type slot struct {
	_     cpu.CacheLinePad
	flag  atomicword.Cell
	_     cpu.CacheLinePad
}

// Lock is an Anderson array lock.
type Lock struct {
	nextSlot    atomicword.Cell
	servingSlot atomicword.Cell
	flags       [MaxSlots]slot
	numSlots    uint32
}

// NewLock returns a Lock supporting up to numSlots concurrent participants.
// It returns ErrInvalidSlotCount if numSlots is not in [1, MaxSlots].
func NewLock(numSlots int) (*Lock, error) {
	if numSlots <= 0 || numSlots > MaxSlots {
		return nil, ErrInvalidSlotCount
	}
	l := &Lock{numSlots: uint32(numSlots)}
	l.flags[0].flag.Store(slotReady)
	for i := 1; i < numSlots; i++ {
		l.flags[i].flag.Store(slotEmpty)
	}
	return l, nil
}

// Acquire blocks until the calling goroutine's slot is ready.
func (l *Lock) Acquire() {
	s := l.nextSlot.FetchAdd(1) % l.numSlots
	for l.flags[s].flag.LoadAcquire() == slotEmpty {
		atomicword.Pause()
	}
	l.flags[s].flag.Store(slotEmpty)
}

// Release hands the lock to the next slot in the ring.
func (l *Lock) Release() {
	next := (l.servingSlot.Load() + 1) % l.numSlots
	l.servingSlot.Store(next)
	l.flags[next].flag.StoreRelease(slotReady)
}
