package pool

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsAllTasks(t *testing.T) {
	p := New(4, 8)
	defer p.Close()

	var mu sync.Mutex
	var seen []int
	for i := 0; i < 20; i++ {
		i := i
		p.Submit(0, func() {
			mu.Lock()
			seen = append(seen, i)
			mu.Unlock()
		})
	}
	p.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 20)
}

func TestHigherPriorityRunsFirstWhenSerialized(t *testing.T) {
	p := New(1, 1)
	defer p.Close()

	// Block the single worker until both tasks are queued, so priority
	// ordering actually has a chance to matter.
	gate := make(chan struct{})
	p.Submit(100, func() { <-gate })

	var mu sync.Mutex
	var order []int
	p.Submit(1, func() { mu.Lock(); order = append(order, 1); mu.Unlock() })
	p.Submit(5, func() { mu.Lock(); order = append(order, 5); mu.Unlock() })

	close(gate)
	p.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 2)
	assert.Equal(t, 5, order[0])
}

func TestAbortSkipsUnstartedTasks(t *testing.T) {
	p := New(1, 1)
	defer p.Close()

	gate := make(chan struct{})
	p.Submit(10, func() { <-gate })

	var ran bool
	p.Submit(1, func() { ran = true })

	p.Abort()
	close(gate)
	p.Wait()

	assert.False(t, ran)
}

func TestCommitIsAtomic(t *testing.T) {
	p := New(2, 4)
	defer p.Close()

	tx := p.Begin()
	var mu sync.Mutex
	n := 0
	for i := 0; i < 10; i++ {
		tx.Add(0, func() { mu.Lock(); n++; mu.Unlock() })
	}
	p.Commit(tx)
	p.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, n)
}

func TestIdleAndWait(t *testing.T) {
	p := New(2, 2)
	defer p.Close()

	assert.True(t, p.Idle())
	done := make(chan struct{})
	p.Submit(0, func() { time.Sleep(10 * time.Millisecond); close(done) })
	p.Wait()
	<-done
	assert.True(t, p.Idle())
}
