package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/reusee/vartext/chains"
	"github.com/reusee/vartext/syncs"
)

// processFiles runs chain over every file with at most jobs in flight.
// Outputs are returned in input order.
func processFiles(
	ctx context.Context,
	run chains.Run,
	chain chains.Chain,
	paths []string,
	jobs int,
) ([]string, error) {
	sem := syncs.NewSemaphore(jobs)
	outputs := make([]string, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		if err := sem.Go(ctx, func() {
			defer wg.Done()
			content, err := os.ReadFile(path)
			if err != nil {
				errs[i] = err
				return
			}
			out, err := run(ctx, chain, string(content))
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return
			}
			outputs[i] = out
		}); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("%s: %w", path, err)
			break
		}
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return outputs, nil
}
