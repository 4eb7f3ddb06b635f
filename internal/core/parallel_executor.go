package core

import (
	"context"
	"runtime"
	"sync"

	"github.com/licenseguard/licenseguard/internal/types"
)

// ProgressTracker receives resolution progress updates.
// Implementations live in internal/tui; NoOp behavior is a nil-safe default here.
type ProgressTracker interface {
	Increment(message string)
	SetTotal(total int)
	Complete()
	Fail(err error)
}

// ParallelExecutor resolves licenses for independent dependencies concurrently.
// Concurrency is a latency optimization only: the output slice always has the
// same length and index correspondence as the input dependency sequence.
type ParallelExecutor struct {
	maxWorkers int
}

// NewParallelExecutor creates an executor with the given worker count.
// Zero selects NumCPU, capped at 8 to avoid hammering the metadata service.
func NewParallelExecutor(maxWorkers int) *ParallelExecutor {
	workers := maxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > 8 {
		workers = 8
	}
	return &ParallelExecutor{maxWorkers: workers}
}

// indexedRecord pairs a resolution result with its input position.
type indexedRecord struct {
	idx    int
	record types.LicenseRecord
}

// ResolveAll produces exactly one LicenseRecord per input dependency, at the
// same index. Resolution failures are already data ("unknown" records), so
// ResolveAll has no error return. A cancelled context short-circuits remaining
// lookups into unknown records rather than aborting.
func (p *ParallelExecutor) ResolveAll(
	ctx context.Context,
	deps []types.Dependency,
	resolver LicenseResolver,
	progress ProgressTracker,
) []types.LicenseRecord {
	if len(deps) == 0 {
		return []types.LicenseRecord{}
	}

	workerCount := p.maxWorkers
	if workerCount > len(deps) {
		workerCount = len(deps)
	}

	if workerCount <= 1 {
		return p.resolveSequential(ctx, deps, resolver, progress)
	}

	jobs := make(chan int, len(deps))
	results := make(chan indexedRecord, len(deps))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go p.resolveWorker(ctx, &wg, jobs, results, deps, resolver)
	}

	for i := range deps {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]types.LicenseRecord, len(deps))
	for res := range results {
		records[res.idx] = res.record
		if progress != nil {
			progress.Increment(res.record.Dependency.Name)
		}
	}

	return records
}

// resolveSequential is the reference single-pass execution model.
func (p *ParallelExecutor) resolveSequential(
	ctx context.Context,
	deps []types.Dependency,
	resolver LicenseResolver,
	progress ProgressTracker,
) []types.LicenseRecord {
	records := make([]types.LicenseRecord, len(deps))
	for i, dep := range deps {
		records[i] = resolveOne(ctx, dep, resolver)
		if progress != nil {
			progress.Increment(dep.Name)
		}
	}
	return records
}

// resolveWorker is a worker goroutine that processes dependency indices from jobs.
func (p *ParallelExecutor) resolveWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan int,
	results chan<- indexedRecord,
	deps []types.Dependency,
	resolver LicenseResolver,
) {
	defer wg.Done()

	for idx := range jobs {
		results <- indexedRecord{
			idx:    idx,
			record: resolveOne(ctx, deps[idx], resolver),
		}
	}
}

// resolveOne resolves a single dependency, turning context cancellation into
// an unknown record instead of an error.
func resolveOne(ctx context.Context, dep types.Dependency, resolver LicenseResolver) types.LicenseRecord {
	if err := ctx.Err(); err != nil {
		return types.LicenseRecord{
			Dependency:    dep,
			LicenseID:     types.LicenseUnknown,
			FailureReason: err.Error(),
		}
	}
	return resolver.Resolve(ctx, dep)
}
