package renderer

import (
	"image"
	"runtime"
	"sync"

	"github.com/xaanimus/xsray/pkg/core"
)

// tileTask is one tile assignment for the worker pool.
type tileTask struct {
	bounds image.Rectangle
}

// workerPool renders tiles in parallel. The scene and its BVH are
// read-only after construction and tiles never overlap, so workers write
// to disjoint slices of the shared buffer without locking.
type workerPool struct {
	renderer   *Renderer
	numWorkers int
	taskQueue  chan tileTask
	wg         sync.WaitGroup
}

// newWorkerPool creates a pool; numWorkers <= 0 auto-detects the CPU
// count.
func newWorkerPool(r *Renderer, numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &workerPool{
		renderer:   r,
		numWorkers: numWorkers,
	}
}

// run distributes the tiles over the workers and blocks until the buffer
// is complete.
func (wp *workerPool) run(tiles []image.Rectangle, buffer []core.Color3) {
	wp.taskQueue = make(chan tileTask, len(tiles))
	for _, bounds := range tiles {
		wp.taskQueue <- tileTask{bounds: bounds}
	}
	close(wp.taskQueue)

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(buffer)
	}
	wp.wg.Wait()
}

// worker drains the task queue, rendering each tile directly into the
// shared buffer.
func (wp *workerPool) worker(buffer []core.Color3) {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.renderer.renderTile(task.bounds, buffer)
	}
}
