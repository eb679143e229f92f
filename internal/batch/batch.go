// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package batch screens many articles against one target in parallel.
package batch

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"namescreen/internal/observability"
	"namescreen/internal/report"
)

// ScreenFunc runs the single-article pipeline for one file.
type ScreenFunc func(path string) (*report.Report, error)

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, currentFile string)

// Stats tracks batch screening statistics
type Stats struct {
	TotalFiles     int           `json:"total_files"`
	ProcessedFiles int           `json:"processed_files"`
	FailedFiles    int           `json:"failed_files"`
	Matches        int           `json:"matches"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
}

// Processor fans article files out over a bounded worker pool.
type Processor struct {
	workers  int
	observer *observability.Observer
}

// NewProcessor creates a Processor. Worker count follows CPU count, capped to
// avoid resource exhaustion on large machines.
func NewProcessor(observer *observability.Observer) *Processor {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	return &Processor{workers: workers, observer: observer}
}

type jobResult struct {
	index  int
	path   string
	report *report.Report
	err    error
}

// Screen runs screenFn over every file, in parallel, and returns the reports
// in the input file order. Per-file failures are recorded in the stats and
// logged; they do not abort the batch.
func (p *Processor) Screen(paths []string, screenFn ScreenFunc, progress ProgressCallback) ([]*report.Report, *Stats, error) {
	start := time.Now()
	done := p.observer.StartTiming("batch", "screen")

	jobs := make(chan int)
	results := make(chan jobResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rep, err := screenFn(paths[i])
				results <- jobResult{index: i, path: paths[i], report: rep, err: err}
			}
		}()
	}

	go func() {
		for i := range paths {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	stats := &Stats{TotalFiles: len(paths), WorkerCount: p.workers}
	var collected []jobResult
	completed := 0
	for result := range results {
		completed++
		if progress != nil {
			progress(completed, len(paths), result.path)
		}
		if result.err != nil {
			stats.FailedFiles++
			p.observer.Log(observability.OperationData{
				Component: "batch",
				Operation: "screen_file",
				FilePath:  result.path,
				Success:   false,
				Error:     result.err.Error(),
			})
			continue
		}
		stats.ProcessedFiles++
		if result.report.MatchResult == "MATCH" {
			stats.Matches++
		}
		collected = append(collected, result)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})
	reports := make([]*report.Report, len(collected))
	for i, r := range collected {
		reports[i] = r.report
	}

	stats.TotalDuration = time.Since(start)
	done(true, map[string]any{
		"files":   stats.TotalFiles,
		"failed":  stats.FailedFiles,
		"matches": stats.Matches,
	})
	return reports, stats, nil
}
