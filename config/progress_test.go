package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelayedAccumulatorFlushSendsPending(t *testing.T) {
	var mu sync.Mutex
	var total int64
	acc := NewDelayedAccumulator(func(n int64) {
		mu.Lock()
		total += n
		mu.Unlock()
	})

	acc.Add(3)
	acc.Add(4)
	acc.Flush()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int64(7), total)
}

func TestDelayedAccumulatorCoalescesWithinCadence(t *testing.T) {
	calls := 0
	acc := NewDelayedAccumulator(func(n int64) { calls++ })

	acc.Add(1)
	acc.Add(1)
	acc.Add(1)

	// All three adds land well within the 50ms cadence of the first
	// (zero-time) flush gate, so at most the initial flush fires.
	assert.LessOrEqual(t, calls, 1)
}

func TestClampThreads(t *testing.T) {
	s := Settings{Threads: 0}
	s.ClampThreads(8)
	assert.Equal(t, 1, s.Threads)

	s = Settings{Threads: 100}
	s.ClampThreads(8)
	assert.Equal(t, 7, s.Threads)
}
