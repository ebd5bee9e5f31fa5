package concurrent

import (
	"sync"
)

// JobFunc processes one job. id identifies the worker running it.
type JobFunc[T any, R any] func(id int, job T) R

// WorkerPool runs a fixed number of workers over a bounded job queue. Usage: Start, AddJob for
// every job, Close, then drain CollectResults; Wait closes the results channel once every worker
// has returned.
type WorkerPool[T any, R any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan R
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, R any](numWorkers, jobQueueSize int) *WorkerPool[T, R] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, R]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan R, jobQueueSize),
	}
}

func (wp *WorkerPool[T, R]) worker(id int, jobFunc JobFunc[T, R]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(id, job)
	}
}

func (wp *WorkerPool[T, R]) Start(jobFunc JobFunc[T, R]) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i, jobFunc)
	}
}

func (wp *WorkerPool[T, R]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, R]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, R]) CollectResults() <-chan R {
	return wp.results
}

func (wp *WorkerPool[T, R]) Close() {
	close(wp.jobQueue)
}

// Run feeds every job to a pool of numWorkers and returns the results in job order.
func Run[T any, R any](numWorkers int, jobs []T, jobFunc JobFunc[T, R]) []R {
	type indexed struct {
		i   int
		res R
	}
	wp := NewWorkerPool[int, indexed](numWorkers, len(jobs))
	wp.Start(func(id, i int) indexed {
		return indexed{i: i, res: jobFunc(id, jobs[i])}
	})
	for i := range jobs {
		wp.AddJob(i)
	}
	wp.Close()
	go wp.Wait()

	out := make([]R, len(jobs))
	for r := range wp.CollectResults() {
		out[r.i] = r.res
	}
	return out
}
