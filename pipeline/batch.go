package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type BatchError struct {
	Failed map[string]error
	Total  int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d files failed", len(e.Failed), e.Total)
}

// CollectSources expands directories into the .uge files they hold, sorted.
// Plain file arguments are kept as given.
func CollectSources(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", arg)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "list %s", arg)
		}
		for _, e := range entries {
			if !e.IsDir() && isSource(e.Name()) {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// RunBatch converts paths on up to Config.Workers goroutines. A failing file
// does not stop the others; results keep the input order with nil for
// failures.
func (r *Runner) RunBatch(ctx context.Context, paths []string) ([]*Result, error) {
	r.logf("\n=== Batch (%d files, %d workers) ===\n", len(paths), r.Config.Workers)

	bases := outputBases(paths)
	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Config.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			res, err := r.convertFile(path, bases[i])
			if err != nil {
				r.logf("  FAILED: %v\n", err)
				errs[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	batchErr := &BatchError{Failed: map[string]error{}, Total: len(paths)}
	for i, err := range errs {
		if err != nil {
			batchErr.Failed[paths[i]] = err
		}
	}
	r.logf("  Converted %d of %d\n", len(paths)-len(batchErr.Failed), len(paths))
	if len(batchErr.Failed) > 0 {
		return results, batchErr
	}
	return results, nil
}
