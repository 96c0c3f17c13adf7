package bench

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunDrivesEveryGoroutineToCompletion(t *testing.T) {
	var calls atomic.Int64
	w := Workload{Name: "test", Concurrency: 4, Iterations: 1000}

	Run(w, func() { calls.Add(1) })

	assert.Equal(t, int64(w.Concurrency*w.Iterations), calls.Load())
}
