package tatas

import (
	"sync"
	"testing"

	"github.com/nbtaylor/spinprims/internal/bench"
	"github.com/stretchr/testify/assert"
)

func TestTryAcquireThenAcquire(t *testing.T) {
	l := New()

	assert.True(t, l.TryAcquire())
	assert.False(t, l.TryAcquire())

	l.Release()
	assert.True(t, l.TryAcquire())
}

func TestRoundTrip(t *testing.T) {
	l := New()
	for i := 0; i < 100; i++ {
		l.Acquire()
		l.Release()
	}
}

func TestIdempotentInit(t *testing.T) {
	var a, b Lock
	assert.Equal(t, a, b)
}

func TestMutualExclusion(t *testing.T) {
	const goroutines = 8
	const iterations = 100000

	l := New()
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				l.Acquire()
				counter++
				l.Release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*iterations, counter)
}

func BenchmarkUncontendedAcquireRelease(b *testing.B) {
	l := New()
	for i := 0; i < b.N; i++ {
		l.Acquire()
		l.Release()
	}
}

func BenchmarkContendedAcquireRelease(b *testing.B) {
	l := New()
	for _, w := range bench.Workloads {
		b.Run(w.Name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				bench.Run(w, func() {
					l.Acquire()
					l.Release()
				})
			}
		})
	}
}
