package aggregator

import (
	"context"
	"errors"
	"io"
	"sync"

	"golang.org/x/sync/semaphore"

	"glpidashboard/internal/repositories/glpi"
	"glpidashboard/pkg/logger"
)

// Policy decides what a failed query does to its batch.
type Policy int

const (
	// BestEffort counts a failed query as 0 and keeps going.
	BestEffort Policy = iota
	// Strict aborts the batch on the first failure and returns it.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "best-effort"
}

// Counter is the part of the GLPI gateway the aggregator needs.
type Counter interface {
	Count(ctx context.Context, s glpi.Session, itemType string, criteria glpi.Criteria) (int, error)
}

// Query is one count query of a batch, identified by Key.
type Query[K comparable] struct {
	Key      K
	ItemType string
	Criteria glpi.Criteria
}

// Result is the reduced batch. Counts sums the counts of every query sharing
// a key; a failed BestEffort query contributes 0.
type Result[K comparable] struct {
	Counts   map[K]int
	Failures int
}

// Total returns the sum of all counts.
func (r *Result[K]) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Config configures the Aggregator.
type Config struct {
	// Workers bounds how many queries of one batch run at the same time.
	Workers int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Workers: 10}
}

// Aggregator runs batches of independent count queries with a bounded pool.
type Aggregator struct {
	counter Counter
	config  Config
	log     *logger.Logger
}

// New creates a new Aggregator.
func New(counter Counter, config Config, log *logger.Logger) *Aggregator {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}
	if log == nil {
		log = logger.NewLogger(logger.Config{Service: "aggregator", Output: io.Discard})
	}
	return &Aggregator{counter: counter, config: config, log: log}
}

// Workers returns the pool size.
func (a *Aggregator) Workers() int {
	return a.config.Workers
}

type outcome[K comparable] struct {
	key   K
	count int
	err   error
}

// Run executes queries concurrently and reduces them by key.
//
// Workers never touch the aggregate: they send outcomes over a channel and
// only this goroutine folds them into Counts, so completion order does not
// change the result. Under Strict, the first failure stops dispatch and is
// returned with no partial result; workers already in flight finish on their
// own and their outcomes are dropped.
func Run[K comparable](ctx context.Context, a *Aggregator, session glpi.Session, queries []Query[K], policy Policy) (*Result[K], error) {
	res := &Result[K]{Counts: make(map[K]int, len(queries))}
	if len(queries) == 0 {
		return res, nil
	}

	// buffered to len(queries) so abandoned workers never block
	outcomes := make(chan outcome[K], len(queries))

	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()

	sem := semaphore.NewWeighted(int64(a.config.Workers))
	go func() {
		var wg sync.WaitGroup
		defer func() {
			wg.Wait()
			close(outcomes)
		}()

		for _, q := range queries {
			if err := sem.Acquire(dispatchCtx, 1); err != nil {
				return
			}
			wg.Add(1)
			go func(q Query[K]) {
				defer wg.Done()
				defer sem.Release(1)

				n, err := a.counter.Count(ctx, session, q.ItemType, q.Criteria)
				outcomes <- outcome[K]{key: q.Key, count: n, err: err}
			}(q)
		}
	}()

	received := 0
	for o := range outcomes {
		received++
		if o.err != nil {
			if policy == Strict {
				stopDispatch()
				return nil, glpi.Classify(o.err, "aggregate")
			}
			res.Failures++
			res.Counts[o.key] += 0
			continue
		}
		res.Counts[o.key] += o.count
	}

	if received < len(queries) {
		// dispatch stopped early, only the caller's context does that here
		err := ctx.Err()
		return nil, &glpi.NetworkError{Op: "aggregate", Timeout: errors.Is(err, context.DeadlineExceeded), Err: err}
	}

	if res.Failures > 0 {
		a.log.Warn("best-effort batch had failed queries counted as zero", map[string]interface{}{
			"failures": res.Failures,
			"queries":  len(queries),
			"policy":   policy.String(),
		})
	}

	return res, nil
}
