package kmeans

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/kmeans/internal/lloyd"
	"golang.org/x/sync/errgroup"
)

// SweepEntry is the score recorded for one candidate k.
type SweepEntry struct {
	K          int     `json:"k"`
	Dispersion float64 `json:"dispersion"`
	Iterations int     `json:"iterations"`
	Outcome    Outcome `json:"outcome"`
}

// SweepResult holds one entry per scored candidate in increasing k order.
type SweepResult []SweepEntry

// Ks returns the candidate values in result order.
func (s SweepResult) Ks() []int {
	ks := make([]int, len(s))
	for i, e := range s {
		ks[i] = e.K
	}
	return ks
}

// Dispersions returns the scores in result order.
func (s SweepResult) Dispersions() []float64 {
	ds := make([]float64, len(s))
	for i, e := range s {
		ds[i] = e.Dispersion
	}
	return ds
}

// Elbow picks the k whose score lies furthest below the chord joining the
// first and last entries, after scaling both axes to [0,1]. It needs at
// least three entries and a non-flat curve.
func (s SweepResult) Elbow() (int, bool) {
	if len(s) < 3 {
		return 0, false
	}
	first, last := s[0], s[len(s)-1]
	if first.K == last.K {
		return 0, false
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range s {
		lo = min(lo, e.Dispersion)
		hi = max(hi, e.Dispersion)
	}
	if hi == lo {
		return 0, false
	}

	norm := func(v float64) float64 { return (v - lo) / (hi - lo) }
	yFirst, yLast := norm(first.Dispersion), norm(last.Dispersion)

	best, bestGap := 0, 0.0
	for _, e := range s {
		x := float64(e.K-first.K) / float64(last.K-first.K)
		gap := yFirst + (yLast-yFirst)*x - norm(e.Dispersion)
		if gap > bestGap {
			best, bestGap = e.K, gap
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}

// Sweep runs an independent clustering for every candidate in ks and
// records its dispersion. Every run uses a fresh random source created from
// seed, so a run's result does not depend on the other candidates or on
// WithConcurrency.
//
// Candidates outside [1, N] are skipped: the valid entries are returned
// together with an error joining one *SweepError per skipped candidate.
// With WithFailFast the sweep stops at the first invalid candidate and
// returns the entries of the valid candidates before it. Dataset and option
// errors abort the sweep without a result in both modes.
func Sweep(ctx context.Context, data Dataset, ks []int, seed uint64, opts ...Option) (SweepResult, error) {
	start := time.Now()

	o := applyOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}
	if _, err := lloyd.ValidateDataset(data); err != nil {
		return nil, translateError(err)
	}

	var (
		candidates []int
		invalid    []error
	)
	for _, k := range ks {
		if err := lloyd.ValidateK(k, len(data)); err != nil {
			invalid = append(invalid, &SweepError{K: k, Err: err})
			if o.failFast {
				break
			}
			continue
		}
		candidates = append(candidates, k)
	}
	skipped := len(ks) - len(candidates)

	entries := make(SweepResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, k := range candidates {
		g.Go(func() error {
			if err := o.resources.AcquireWorker(gctx); err != nil {
				return &SweepError{K: k, Err: err}
			}
			defer o.resources.ReleaseWorker()

			res, err := run(gctx, data, k, seed, &o)
			if err != nil {
				return &SweepError{K: k, Err: err}
			}
			disp, err := res.Dispersion(data)
			if err != nil {
				return &SweepError{K: k, Err: err}
			}

			entries[i] = SweepEntry{
				K:          k,
				Dispersion: disp,
				Iterations: res.Iterations,
				Outcome:    res.Outcome,
			}
			o.logger.LogSweepEntry(gctx, entries[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.metricsCollector.RecordSweep(len(ks), skipped, time.Since(start))
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b SweepEntry) int {
		return cmp.Compare(a.K, b.K)
	})

	o.metricsCollector.RecordSweep(len(ks), skipped, time.Since(start))
	o.logger.LogSweep(ctx, len(ks), skipped)
	return entries, errors.Join(invalid...)
}
