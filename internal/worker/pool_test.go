package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := NewPool(3)

	var count int64
	for i := 0; i < 20; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&count, 1)
		})
	}

	pool.Wait()
	assert.Equal(t, int64(20), atomic.LoadInt64(&count))
}

func TestPoolSizeOnePreservesOrder(t *testing.T) {
	pool := NewPool(1)

	var order []int
	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(func() {
			order = append(order, i)
		})
	}

	pool.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestPoolClampsSize(t *testing.T) {
	pool := NewPool(0)

	done := false
	pool.Submit(func() { done = true })
	pool.Wait()

	assert.True(t, done)
}
