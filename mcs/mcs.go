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

// Package mcs implements the Mellor-Crummey and Scott queue lock: a
// linked-list FIFO lock where each waiter spins on a field inside its own
// caller-supplied Node rather than on a single shared word.
//
// Each goroutine that contends for a Lock must own a distinct Node for the
// duration of its acquisition, and must pass the same Node to Acquire and
// Release. A Node must not be used by two goroutines concurrently, and its
// storage must outlive the critical section it guards (spec.md §3's
// "lifetime must cover the critical section" requirement) — typically this
// means one Node per goroutine, stack-allocated or pooled, reused across
// acquisitions once the prior critical section has ended.
//
// Acquisition order is strictly FIFO in the order each goroutine's
// tail-exchange completed.
package mcs

import (
	"sync/atomic"

	"github.com/nbtaylor/spinprims/atomicword"
)

// Node is a caller-supplied queue node. The zero value is ready to use.
type Node struct {
	next   atomic.Pointer[Node]
	locked atomicword.Cell
}

const (
	free    uint32 = 0
	waiting uint32 = 1
)

// Lock is an MCS queue lock. The zero value is an unlocked lock with an
// empty queue.
type Lock struct {
	tail atomic.Pointer[Node]
}

// New returns a new, unlocked Lock.
func New() *Lock { return &Lock{} }

// Acquire blocks until node is at the head of the queue. node must not
// already be queued on any lock.
func (l *Lock) Acquire(node *Node) {
	node.next.Store(nil)
	node.locked.Store(free)

	pred := l.tail.Swap(node)
	if pred == nil {
		// The queue was empty: we have the lock.
		return
	}

	node.locked.Store(waiting)
	pred.next.Store(node)

	for node.locked.LoadAcquire() != free {
		atomicword.Pause()
	}
}

// TryAcquire attempts to acquire the lock without blocking, succeeding
// only if the queue is currently empty. It reports whether the lock was
// acquired.
func (l *Lock) TryAcquire(node *Node) bool {
	node.next.Store(nil)
	node.locked.Store(free)
	return l.tail.CompareAndSwap(nil, node)
}

// Release releases the lock held via node, handing it to node's successor
// if one has already linked itself in, or clearing the queue if node was
// the last arrival.
func (l *Lock) Release(node *Node) {
	if node.next.Load() == nil {
		if l.tail.CompareAndSwap(node, nil) {
			return
		}
		// A successor has claimed the tail but has not yet published
		// itself into node.next; spin until it does.
		var succ *Node
		for {
			succ = node.next.Load()
			if succ != nil {
				break
			}
			atomicword.Pause()
		}
		succ.locked.StoreRelease(free)
		return
	}

	node.next.Load().locked.StoreRelease(free)
}
