package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/Mr0grog/yaml-doctor/internal/logging"
	"github.com/Mr0grog/yaml-doctor/pkg/doctor"
)

// workItem is a file headed to the worker pool.
type workItem struct {
	path string
}

// workResult carries a worker's outcome back to the collector.
type workResult struct {
	path   string
	result *doctor.Result
	err    error
}

// Run discovers files under opts.Paths and checks them concurrently.
// Per-file read failures (missing or unreadable files) are recorded in
// the result; any other error aborts the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, unreadable, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Unreadable: unreadable}
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	fsys := opts.effectiveFS()
	checkOpts := doctor.Options{
		Fix:                   opts.Fix,
		DryRun:                opts.DryRun,
		KeepInvalidCharacters: opts.KeepInvalidCharacters,
		Debug:                 opts.Debug,
	}
	if opts.Debug {
		checkOpts.Logger = logging.FromContext(ctx)
	}

	workCh := make(chan workItem)
	outCh := make(chan workResult)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				res, err := doctor.CheckFile(fsys, item.path, nil, checkOpts)
				select {
				case <-ctx.Done():
					return
				case outCh <- workResult{path: item.path, result: res, err: err}:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- workItem{path: path}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect by path and rebuild the
	// deterministic order afterwards.
	outcomes := make(map[string]workResult, len(files))
	var fatal error
	for out := range outCh {
		if out.err != nil {
			if os.IsNotExist(out.err) || os.IsPermission(out.err) {
				result.Unreadable = append(result.Unreadable, UnreadableFile{Path: out.path, Err: out.err})
				continue
			}
			if fatal == nil {
				fatal = fmt.Errorf("check %s: %w", out.path, out.err)
			}
			continue
		}
		outcomes[out.path] = out
	}
	if fatal != nil {
		return nil, fatal
	}

	sort.Slice(result.Unreadable, func(i, j int) bool {
		return result.Unreadable[i].Path < result.Unreadable[j].Path
	})

	for _, path := range files {
		if out, ok := outcomes[path]; ok {
			result.accumulate(FileOutcome{Path: path, Result: out.result})
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}
