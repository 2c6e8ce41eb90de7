package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/source"
)

// ProgressFunc is called as work completes.
// current is the number of items processed so far, total is the total count.
type ProgressFunc func(current, total int)

// RunResult pairs a scenario's report with its error.
type RunResult struct {
	Report *Report
	Err    error
}

// RunAll runs every scenario with a bounded worker pool. Results are in
// input order.
func RunAll(scenarios []model.Scenario, opts Options, progressFn ProgressFunc) []RunResult {
	results := make([]RunResult, len(scenarios))
	forEach(len(scenarios), progressFn, func(i int) {
		rep, err := Run(scenarios[i], opts)
		results[i] = RunResult{Report: rep, Err: err}
	})
	return results
}

// LoadResult holds the output of loading a scenario directory.
type LoadResult struct {
	Scenarios  []model.Scenario
	TotalFiles int
	FileErrors int
	Errors     []error
}

// LoadDir discovers and parses all scenario files under dir.
func LoadDir(dir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	parsed := make([]source.ParseResult, len(files))
	forEach(len(files), progressFn, func(i int) {
		parsed[i] = source.Parse(files[i])
	})

	for _, pr := range parsed {
		if pr.Err != nil {
			result.FileErrors++
			result.Errors = append(result.Errors, pr.Err)
			continue
		}
		result.Scenarios = append(result.Scenarios, pr.Scenario)
	}
	return result, nil
}

// forEach calls fn for 0..n-1 on a pool of GOMAXPROCS workers.
func forEach(n int, progressFn ProgressFunc, fn func(i int)) {
	if n == 0 {
		return
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > n {
		numWorkers = n
	}

	work := make(chan int, n)
	for i := 0; i < n; i++ {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	var processed atomic.Int64

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				fn(idx)
				done := processed.Add(1)
				if progressFn != nil {
					progressFn(int(done), n)
				}
			}
		}()
	}
	wg.Wait()
}
