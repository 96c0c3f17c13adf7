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

// Package bench is the benchmarking driver's shared harness: it is not
// part of the core the other packages in this module implement (spec.md
// §1 places "the benchmarking driver" outside the core, as an external
// collaborator), but a production-quality repository keeps it checked in
// alongside the packages it measures rather than as a separate undiscoverable
// tool, the same way the teacher library's own ilock_test.go bundles
// Benchmark* functions next to its correctness tests.
//
// It is a Go-native stand-in for the original C library's standalone
// tests/bench_locks.c driver: that driver benchmarks each lock kind across
// a fixed thread-count matrix and reports throughput. Workloads here
// captures that same thread-count/iteration-count matrix so every lock
// package's own benchmarks (and any future driver) can share one
// definition of "what counts as low, medium, and high concurrency" for
// this module.
package bench

// Workload describes one point in the benchmark matrix: how many
// goroutines contend for a lock, and how many acquire/release cycles each
// one performs.
type Workload struct {
	Name        string
	Concurrency int
	Iterations  int
}

// Workloads is the thread-count matrix every lock package's benchmarks are
// run against, modeled on the original C driver's NUM_THREADS_LIST {1, 2,
// 4, 8} and the teacher's own workloads table (ilock_test.go), extended
// with a high-concurrency point since this module's queue locks (mcs, clh,
// anderson) are specifically designed to keep scaling past eight cores.
var Workloads = []Workload{
	{Name: "serial", Concurrency: 1, Iterations: 1_000_000},
	{Name: "low", Concurrency: 2, Iterations: 500_000},
	{Name: "medium", Concurrency: 4, Iterations: 250_000},
	{Name: "high", Concurrency: 8, Iterations: 125_000},
	{Name: "very_high", Concurrency: 32, Iterations: 31_250},
}

// Run drives critical, a function that performs one acquire/critical
// section/release cycle, across every goroutine in w.Concurrency, w.Iterations
// times each, and returns once they have all finished. It has no timing or
// reporting of its own: callers that want throughput numbers wrap Run in a
// testing.B benchmark, the same way the BenchmarkContendedAcquireRelease
// benchmarks of spinlock, tatas, ticket, anderson and mcs do.
func Run(w Workload, critical func()) {
	done := make(chan struct{}, w.Concurrency)
	for g := 0; g < w.Concurrency; g++ {
		go func() {
			for i := 0; i < w.Iterations; i++ {
				critical()
			}
			done <- struct{}{}
		}()
	}
	for g := 0; g < w.Concurrency; g++ {
		<-done
	}
}
