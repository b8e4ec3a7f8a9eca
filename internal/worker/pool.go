// Package worker renders animation frames in parallel.
package worker

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// Generator renders one frame and reports where it was written.
type Generator interface {
	Generate(ctx context.Context, task Task) (path string, err error)
}

// Task is a single frame: its sequence number and the z it is sampled at.
// Force re-renders frames whose output already exists.
type Task struct {
	Index int
	Z     float64
	Force bool
}

// Result represents the outcome of a frame task.
type Result struct {
	Task    Task
	Path    string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Generator  Generator
	OnProgress ProgressFunc
}

// Pool fans frame tasks out over a fixed number of goroutines.
type Pool struct {
	workers    int
	generator  Generator
	onProgress ProgressFunc
}

// New creates a new worker pool. Workers <= 0 means a single worker.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

// Tasks builds count consecutive frames starting at z0 and stepping by speed.
func Tasks(count int, z0, speed float64, force bool) []Task {
	if count <= 0 {
		return nil
	}
	tasks := make([]Task, count)
	for i := range tasks {
		tasks[i] = Task{Index: i, Z: z0 + float64(i)*speed, Force: force}
	}
	return tasks
}

// Run executes all tasks and returns their results ordered by frame index.
// It blocks until every task has a result; tasks not yet started when ctx is
// cancelled report ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		var completed, failed int
		for result := range resultCh {
			results = append(results, result)

			completed++
			if result.Err != nil {
				failed++
			}
			if p.onProgress != nil {
				p.onProgress(completed, len(tasks), failed)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	slices.SortFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Task.Index, b.Task.Index)
	})
	return results
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		if err := ctx.Err(); err != nil {
			results <- Result{Task: task, Err: err}
			continue
		}

		start := time.Now()
		path, err := p.generator.Generate(ctx, task)

		results <- Result{
			Task:    task,
			Path:    path,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
