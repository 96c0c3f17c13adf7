package anderson

import (
	"sync"
	"testing"

	"github.com/nbtaylor/spinprims/internal/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLockRejectsBadSlotCounts(t *testing.T) {
	_, err := NewLock(0)
	assert.ErrorIs(t, err, ErrInvalidSlotCount)

	_, err = NewLock(MaxSlots + 1)
	assert.ErrorIs(t, err, ErrInvalidSlotCount)

	_, err = NewLock(-3)
	assert.ErrorIs(t, err, ErrInvalidSlotCount)
}

func TestRoundTrip(t *testing.T) {
	l, err := NewLock(8)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		l.Acquire()
		l.Release()
	}
}

func TestIdempotentInit(t *testing.T) {
	a, err := NewLock(8)
	require.NoError(t, err)
	b, err := NewLock(8)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestMutualExclusion exercises spec.md §8's universal property 1 with the
// Anderson lock's defining constraint honored: the number of concurrent
// participants (goroutines) never exceeds the configured slot count.
func TestMutualExclusion(t *testing.T) {
	const goroutines = 8
	const iterations = 100000

	l, err := NewLock(goroutines)
	require.NoError(t, err)
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
	l, err := NewLock(MaxSlots)
	require.NoError(b, err)
	for i := 0; i < b.N; i++ {
		l.Acquire()
		l.Release()
	}
}

func BenchmarkContendedAcquireRelease(b *testing.B) {
	// Anderson's slot count is a hard cap on concurrent participants, so
	// only workloads within MaxSlots are exercised here.
	for _, w := range bench.Workloads {
		if w.Concurrency > MaxSlots {
			continue
		}
		b.Run(w.Name, func(b *testing.B) {
			l, err := NewLock(w.Concurrency)
			require.NoError(b, err)
			for i := 0; i < b.N; i++ {
				bench.Run(w, func() {
					l.Acquire()
					l.Release()
				})
			}
		})
	}
}
