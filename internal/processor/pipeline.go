package processor

import (
	"context"
	"sync"
)

// RunPipeline applies transform to every path with a bounded worker pool and
// returns the collected results once the pool drains. Workers communicate
// only through channels; each emits immutable FileResults and the single
// collector goroutine owns the result slice.
//
// Cancelling ctx stops dispatching new paths and lets in-flight transforms
// finish, so the returned slice covers exactly the completed work.
func RunPipeline(ctx context.Context, paths []string, transform Transform, workers int, updates chan<- ProgressUpdate) []FileResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	if updates != nil {
		updates <- ProgressUpdate{TotalDelta: len(paths)}
	}

	jobs := make(chan string)
	out := make(chan FileResult)

	var cancelled <-chan struct{}
	if ctx != nil {
		cancelled = ctx.Done()
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			// Cancellation is checked before taking a path, never after:
			// a path pulled off jobs is always transformed and reported.
			for {
				select {
				case <-cancelled:
					return
				case path, ok := <-jobs:
					if !ok {
						return
					}
					out <- transform(path)
				}
			}
		}()
	}

	results := make([]FileResult, 0, len(paths))
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range out {
			results = append(results, res)
			if updates != nil {
				updates <- progressDelta(res)
			}
		}
	}()

	go func() {
		defer close(jobs)
		for _, path := range paths {
			if ctx == nil {
				jobs <- path
				continue
			}
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(out)
	<-collectorDone

	return results
}

func progressDelta(res FileResult) ProgressUpdate {
	delta := ProgressUpdate{DoneDelta: 1}
	switch res.Outcome {
	case OutcomeSuccess:
		delta.SavedDelta = res.OriginalSize - res.OutputSize
	case OutcomeFailed:
		delta.FailedDelta = 1
	default:
		delta.SkippedDelta = 1
	}
	return delta
}
