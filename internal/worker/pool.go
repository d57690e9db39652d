// internal/worker/pool.go
package worker

import (
	"sync"
)

// Pool limits the number of tasks running at once. A pool of size 1 runs
// tasks strictly in submission order.
type Pool struct {
	wg      sync.WaitGroup
	workers chan struct{}
}

// NewPool creates a new worker pool with the specified number of workers.
// Sizes below 1 are treated as 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		workers: make(chan struct{}, size),
	}
}

// Submit blocks until a worker is free, then runs task on it.
func (p *Pool) Submit(task func()) {
	p.workers <- struct{}{}
	p.wg.Add(1)

	go func() {
		defer func() {
			<-p.workers
			p.wg.Done()
		}()

		task()
	}()
}

// Wait waits for all submitted tasks to complete.
func (p *Pool) Wait() {
	p.wg.Wait()
}
