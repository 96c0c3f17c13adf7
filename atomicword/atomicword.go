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

// Package atomicword implements the portable 32-bit atomic primitive layer
// that every lock algorithm in this module is built on.  It is the thin
// bottom layer described by the package suite: load/store with acquire and
// release semantics, exchange, compare-and-swap, fetch-and-add/sub/and/or,
// a spin-loop pause hint, and process-wide memory barriers.
//
// Go's sync/atomic already provides sequential consistency for every
// operation on a shared word, which is strictly stronger than the
// acquire/release discipline the lock algorithms in this module require.
// Cell therefore implements every operation directly on top of
// sync/atomic.Uint32; the separate Load/LoadAcquire and Store/StoreRelease
// method names exist so that call sites in the lock packages continue to
// document which ordering they actually depend on, not because the two
// compile to different instructions today.
//
// Pause and the Barrier* functions are the two places where this layer is
// genuinely platform-specific: on amd64 Pause and FullBarrier compile to
// PAUSE and MFENCE (ReadBarrier and WriteBarrier are compiler-only
// barriers there), on arm64 to YIELD and DMB ISH/ISHLD/ISHST, selected
// per-file by GOARCH the same way the Go runtime itself picks
// runtime.procyield's backend.
package atomicword

import "sync/atomic"

// Cell is a 32-bit atomic cell. The zero value is a cell holding 0, which
// is the only initialization every lock in this module requires.
type Cell struct {
	v atomic.Uint32
}

// Load reads the cell with relaxed ordering.
func (c *Cell) Load() uint32 { return c.v.Load() }

// Store writes the cell with relaxed ordering.
func (c *Cell) Store(val uint32) { c.v.Store(val) }

// LoadAcquire reads the cell with acquire ordering: subsequent reads and
// writes by this goroutine cannot be reordered before this load.
func (c *Cell) LoadAcquire() uint32 { return c.v.Load() }

// StoreRelease writes the cell with release ordering: prior reads and
// writes by this goroutine cannot be reordered after this store.
func (c *Cell) StoreRelease(val uint32) { c.v.Store(val) }

// Exchange atomically sets the cell to val and returns the previous value,
// with acquire-release ordering.
func (c *Cell) Exchange(val uint32) uint32 { return c.v.Swap(val) }

// CompareAndSwap atomically sets the cell to new if it currently holds
// old, returning the value observed immediately before the attempt. On
// success the ordering is acquire-release; on failure, acquire.
func (c *Cell) CompareAndSwap(old, new uint32) (prior uint32) {
	for {
		cur := c.v.Load()
		if cur != old {
			return cur
		}
		if c.v.CompareAndSwap(old, new) {
			return old
		}
		// Lost a race against a concurrent writer; the spec's prototype
		// for this operation returns the prior value as observed at the
		// moment of the (possibly failed) attempt, so retry the read.
	}
}

// CompareAndSwapBool is CompareAndSwap's boolean-result sibling: it
// reports success instead of the prior value.
func (c *Cell) CompareAndSwapBool(old, new uint32) bool {
	return c.v.CompareAndSwap(old, new)
}

// FetchAdd atomically adds delta to the cell and returns the value prior
// to the addition.
func (c *Cell) FetchAdd(delta uint32) uint32 { return c.v.Add(delta) - delta }

// FetchSub atomically subtracts delta from the cell and returns the value
// prior to the subtraction.
func (c *Cell) FetchSub(delta uint32) uint32 { return c.v.Add(-delta) + delta }

// FetchAnd atomically ANDs mask into the cell and returns the value prior
// to the operation.
func (c *Cell) FetchAnd(mask uint32) uint32 {
	for {
		cur := c.v.Load()
		if c.v.CompareAndSwap(cur, cur&mask) {
			return cur
		}
	}
}

// FetchOr atomically ORs mask into the cell and returns the value prior to
// the operation.
func (c *Cell) FetchOr(mask uint32) uint32 {
	for {
		cur := c.v.Load()
		if c.v.CompareAndSwap(cur, cur|mask) {
			return cur
		}
	}
}

// Increment adds 1 to the cell and returns the new value.
func (c *Cell) Increment() uint32 { return c.v.Add(1) }

// Decrement subtracts 1 from the cell and returns the new value.
func (c *Cell) Decrement() uint32 { return c.v.Add(^uint32(0)) }
