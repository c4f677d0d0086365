package media

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// PreloadConcurrency bounds the number of images decoded in parallel
const PreloadConcurrency = 4

// Preload warms the loader with every source. Failures are logged and
// counted but do not stop the other loads.
func Preload(ctx context.Context, loader Loader, srcs []string) (failed int) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(PreloadConcurrency)

	errs := make([]error, len(srcs))
	for i, src := range srcs {
		g.Go(func() error {
			if _, err := loader.Load(gctx, src); err != nil {
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			log.Printf("media: preload %s failed: %v", srcs[i], err)
			failed++
		}
	}
	return failed
}
