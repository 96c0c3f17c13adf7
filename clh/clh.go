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

// Package clh implements the Craig, Landin, and Hagersten queue lock: a
// FIFO lock, like mcs, but where each waiter spins on its *predecessor's*
// node rather than its own, and the queue is implicit in a chain of tail
// swaps rather than explicit next pointers.
//
// A CLH holder must not touch its own node again once it releases: its
// successor may still be spinning on that node's locked field. This
// package makes that rule explicit in the API instead of leaking memory or
// corrupting a live spin: acquiring and releasing is done through a
// Handle, which owns a rotating pair of Nodes (spec.md §3: "each thread
// holds a rotating pair of nodes"). After Release, the node a Handle just
// finished spinning on — guaranteed free, since its owner has already
// released it and nothing else ever reads a CLH node once free — becomes
// the Handle's node for its next Acquire.
package clh

import (
	"sync/atomic"

	"github.com/nbtaylor/spinprims/atomicword"
)

// Node is a CLH queue node.
type Node struct {
	locked atomicword.Cell
}

const (
	free uint32 = 0
	held uint32 = 1
)

// Lock is a CLH queue lock. The zero value is NOT ready to use: call New
// instead, which allocates and publishes the dummy tail node spec.md §3
// requires ("the CLH lock additionally allocates an initial dummy node").
type Lock struct {
	tail atomic.Pointer[Node]
}

// New returns a new, unlocked Lock with its dummy tail node already
// published.
func New() *Lock {
	l := &Lock{}
	l.tail.Store(&Node{})
	return l
}

// Close frees the Lock's current tail node, per spec.md §3 ("the CLH lock
// must free its current tail node on destruction"). Callers must not use
// the Lock, or any Handle still queued on it, afterward.
func (l *Lock) Close() {
	l.tail.Store(nil)
}

// Handle is a per-goroutine CLH participant: the caller-supplied rotating
// node pair. The zero value is ready to use; callers must not share a
// Handle across goroutines, and must pass the same Handle to Acquire and
// the matching Release.
type Handle struct {
	node  *Node // published to the lock's tail for the current/next acquisition
	spare *Node // the predecessor node freed by the most recent Acquire
}

// NewHandle returns a Handle ready for its first Acquire.
func NewHandle() *Handle {
	return &Handle{node: &Node{}}
}

// Acquire blocks until h's predecessor in the queue releases.
func (l *Lock) Acquire(h *Handle) {
	if h.node == nil {
		h.node = &Node{}
	}
	h.node.locked.Store(held)
	pred := l.tail.Swap(h.node)

	for pred.locked.LoadAcquire() != free {
		atomicword.Pause()
	}
	// pred's owner released before we observed its locked field go to
	// free, and per this package's contract nothing touches a node again
	// after releasing it, so pred is ours to reuse on our next Acquire.
	h.spare = pred
}

// Release releases the lock held via h and rotates h.node with the spare
// freed by the matching Acquire.
func (l *Lock) Release(h *Handle) {
	h.node.locked.StoreRelease(free)
	h.node, h.spare = h.spare, nil
}
