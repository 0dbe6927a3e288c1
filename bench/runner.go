package bench

import (
	"context"
	"time"

	"kiro/editor"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is one ledger entry.
type Result struct {
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Value      int64  `json:"value"`
	Iterations int    `json:"iterations"`
}

// Measure runs w iterations times and reports the mean time per run.
func Measure(ctx context.Context, w Workload, iterations int, opts ...editor.Option) (Result, error) {
	if iterations < 1 {
		iterations = 1
	}
	var total time.Duration
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		start := time.Now()
		if err := w.Session(opts...); err != nil {
			return Result{}, err
		}
		total += time.Since(start)
	}
	return Result{
		Name:       w.Name,
		Unit:       "ns/iter",
		Value:      total.Nanoseconds() / int64(iterations),
		Iterations: iterations,
	}, nil
}

// RunAll measures every workload concurrently. Each workload owns its own
// sessions; nothing is shared between goroutines except the logger. Results
// are returned in the order of workloads.
func RunAll(ctx context.Context, workloads []Workload, iterations int, log *zap.Logger, opts ...editor.Option) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	results := make([]Result, len(workloads))
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range workloads {
		i, w := i, w
		g.Go(func() error {
			log.Debug("workload started", zap.String("name", w.Name), zap.Int("lines", len(w.Lines)))
			wopts := make([]editor.Option, 0, len(opts)+1)
			wopts = append(wopts, opts...)
			wopts = append(wopts, editor.WithLogger(log.Named(w.Name)))
			res, err := Measure(ctx, w, iterations, wopts...)
			if err != nil {
				log.Error("workload failed", zap.String("name", w.Name), zap.Error(err))
				return err
			}
			log.Info("workload done", zap.String("name", w.Name), zap.Int64("ns_per_iter", res.Value))
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
