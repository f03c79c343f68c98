// Package pool implements a priority worker pool: a max-heap task queue,
// transactional batch submission, and idle/wait synchronization via
// condition variables, built on container/heap and sync.
package pool

import (
	"container/heap"
	"math"
	"sync"

	"github.com/df-mc/atomic"
)

// Task is a unit of work submitted to a Pool, run at Priority order —
// higher runs first. Ties are broken by a sequence number that Submit and
// Commit assign; Commit assigns it in heap order rather than call order, so
// among equal priorities submission order holds only for tasks queued by
// Submit alone.
type Task struct {
	Priority int
	Run      func()

	seq int64
}

type taskHeap []Task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)        { *h = append(*h, x.(Task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// Pool runs submitted Tasks across a fixed worker count, popping up to
// maxBatch tasks per wakeup so the heap lock is held briefly and batches of
// related tasks (e.g. a region's chunk tasks) run back to back on one
// worker, per threadpool.cpp's worker loop.
type Pool struct {
	maxBatch int

	mu        sync.Mutex
	taskCond  sync.Cond
	idleCond  sync.Cond
	tasks     taskHeap
	nextSeq   int64
	numActive int
	finish    bool
	wg        sync.WaitGroup

	aborted   atomic.Bool
	completed atomic.Uint64
	failed    atomic.Uint64
}

// New starts size workers, each willing to pop up to maxBatch tasks at a
// time off the shared queue.
func New(size, maxBatch int) *Pool {
	p := &Pool{maxBatch: maxBatch}
	p.taskCond.L = &p.mu
	p.idleCond.L = &p.mu
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.tasks) == 0 && !p.finish {
			p.taskCond.Wait()
		}
		if len(p.tasks) == 0 && p.finish {
			p.mu.Unlock()
			return
		}
		n := int(math.Ceil(float64(len(p.tasks)) / float64(p.workerCountLocked())))
		if n > p.maxBatch {
			n = p.maxBatch
		}
		if n < 1 {
			n = 1
		}
		if n > len(p.tasks) {
			n = len(p.tasks)
		}
		batch := make([]Task, n)
		for i := 0; i < n; i++ {
			batch[i] = heap.Pop(&p.tasks).(Task)
		}
		p.numActive++
		p.mu.Unlock()

		for _, t := range batch {
			if p.aborted.Load() {
				continue
			}
			p.runOne(t)
		}

		p.mu.Lock()
		p.numActive--
		idle := p.idleLocked()
		p.mu.Unlock()
		if idle {
			p.idleCond.Broadcast()
		}
	}
}

func (p *Pool) runOne(t Task) {
	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
		} else {
			p.completed.Add(1)
		}
	}()
	t.Run()
}

// workerCountLocked approximates the number of workers currently competing
// for the queue; it must be called with mu held. 1 is a safe divisor floor
// when nothing else is active.
func (p *Pool) workerCountLocked() int {
	if p.numActive < 1 {
		return 1
	}
	return p.numActive
}

func (p *Pool) idleLocked() bool {
	return p.numActive == 0 && len(p.tasks) == 0
}

// Submit enqueues a single task directly, without the batched-commit
// semantics Begin/Commit provide.
func (p *Pool) Submit(priority int, run func()) {
	p.mu.Lock()
	t := Task{Priority: priority, Run: run, seq: p.nextSeq}
	p.nextSeq++
	heap.Push(&p.tasks, t)
	p.mu.Unlock()
	p.taskCond.Signal()
}

// Idle reports whether no tasks are queued or running.
func (p *Pool) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idleLocked()
}

// Wait blocks until the pool is idle.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.idleLocked() {
		p.idleCond.Wait()
	}
}

// Abort sets the cooperative run flag so workers skip any task not yet
// started. Tasks already running finish uninterrupted; there is no
// mid-execution cancellation.
func (p *Pool) Abort() { p.aborted.Store(true) }

// Aborted reports whether Abort was called.
func (p *Pool) Aborted() bool { return p.aborted.Load() }

// Stats returns the number of tasks that ran to completion and the number
// that panicked.
func (p *Pool) Stats() (completed, failed uint64) {
	return p.completed.Load(), p.failed.Load()
}

// Close stops accepting new workers' wakeups and waits for in-flight
// batches to drain. It does not cancel queued tasks; call Abort first if
// queued work should be skipped.
func (p *Pool) Close() {
	p.mu.Lock()
	p.finish = true
	p.mu.Unlock()
	p.taskCond.Broadcast()
	p.wg.Wait()
}

// Transaction accumulates tasks for atomic submission: building up a
// private queue, then merging it into the pool's in one locked step so no
// partial batch is ever visible to a worker mid-build.
type Transaction struct {
	tasks taskHeap
}

// Begin returns a new, empty Transaction.
func (p *Pool) Begin() *Transaction { return &Transaction{} }

// Add appends a task to the transaction without touching the pool.
func (tx *Transaction) Add(priority int, run func()) {
	heap.Push(&tx.tasks, Task{Priority: priority, Run: run})
}

// Commit submits every task in tx atomically. When tx holds more tasks than
// the pool currently has queued, the pool's (smaller) queue is folded into
// tx's (larger) backing slice instead of the reverse, to minimize the
// number of individual re-pushes needed to restore heap order.
func (p *Pool) Commit(tx *Transaction) {
	p.mu.Lock()
	if len(tx.tasks) > len(p.tasks) {
		p.tasks, tx.tasks = tx.tasks, p.tasks
	}
	for i := range tx.tasks {
		t := tx.tasks[i]
		t.seq = p.nextSeq
		p.nextSeq++
		heap.Push(&p.tasks, t)
	}
	p.mu.Unlock()
	p.taskCond.Broadcast()
}
