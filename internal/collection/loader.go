// Package collection drains the paged summaries endpoint into one in-memory
// collection per date range.
package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/matheuskafuri/billwatch/internal/congress"
)

// PageFetcher fetches one page of the collection.
type PageFetcher interface {
	FetchPage(ctx context.Context, req congress.PageRequest) (congress.Page, error)
}

// Drain requests pages at offsets 0, PageLimit, 2*PageLimit, ... one after
// another and concatenates them in request order. It stops after the first
// page holding fewer than PageLimit records. Any error discards everything
// collected so far.
//
// An invalid range yields an empty collection without any request.
func Drain(ctx context.Context, f PageFetcher, rng congress.DateRange, sort congress.SortSpec) ([]congress.BillSummary, error) {
	if !rng.Valid() {
		return []congress.BillSummary{}, nil
	}

	all := []congress.BillSummary{}
	for offset, done := 0, false; !done; offset += congress.PageLimit {
		page, err := f.FetchPage(ctx, congress.PageRequest{
			Range:  rng,
			Sort:   sort,
			Offset: offset,
			Limit:  congress.PageLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("loading page at offset %d: %w", offset, err)
		}
		all = append(all, page.Summaries...)
		done = page.Len() < congress.PageLimit
	}
	return all, nil
}

// State is the lifecycle of the current load.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Result is the outcome of one Load call.
type Result struct {
	Generation uint64
	Range      congress.DateRange
	Bills      []congress.BillSummary
	Err        error
	// Stale is set when a newer Load started before this one finished. A
	// stale result has not been applied and should be ignored.
	Stale bool
}

// Loader runs Drain for the active date range and keeps only the outcome of
// the most recent request.
type Loader struct {
	fetcher PageFetcher
	sort    congress.SortSpec
	log     zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
	rng    congress.DateRange
	bills  []congress.BillSummary
	err    error
}

// NewLoader returns an idle Loader.
func NewLoader(f PageFetcher, log zerolog.Logger) *Loader {
	return &Loader{fetcher: f, sort: congress.DefaultSort, log: log}
}

// Load drains the collection for rng. Starting a Load cancels any load
// still in flight; that earlier call returns a Stale result.
func (l *Loader) Load(ctx context.Context, rng congress.DateRange) Result {
	return l.Begin(ctx, rng)()
}

// Begin moves the Loader to Loading for rng right away, cancelling any load
// in flight, and returns the function that drains the collection. Callers
// run it in the background; Snapshot reports Loading until it returns.
func (l *Loader) Begin(ctx context.Context, rng congress.DateRange) func() Result {
	ctx, gen := l.begin(ctx, rng)
	return func() Result {
		l.log.Info().Uint64("generation", gen).Str("range", rng.String()).Msg("loading summaries")
		bills, err := Drain(ctx, l.fetcher, rng, l.sort)
		return l.finish(gen, rng, bills, err)
	}
}

func (l *Loader) begin(parent context.Context, rng congress.DateRange) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.gen++
	l.state = Loading
	l.rng = rng
	l.bills = nil
	l.err = nil
	return ctx, l.gen
}

func (l *Loader) finish(gen uint64, rng congress.DateRange, bills []congress.BillSummary, err error) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := Result{Generation: gen, Range: rng, Bills: bills, Err: err}
	if gen != l.gen {
		res.Stale = true
		l.log.Debug().Uint64("generation", gen).Uint64("current", l.gen).Msg("dropping stale load")
		return res
	}

	l.cancel()
	l.cancel = nil
	if err != nil {
		l.state = Failed
		l.bills = nil
		l.err = err
		res.Bills = nil
		l.log.Error().Err(err).Uint64("generation", gen).Msg("load failed")
		return res
	}
	l.state = Ready
	l.bills = bills
	l.log.Info().Uint64("generation", gen).Int("records", len(bills)).Msg("load complete")
	return res
}

// Snapshot reports the current state, the collection of the last successful
// load and the error of the last failed one.
func (l *Loader) Snapshot() (State, []congress.BillSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state, l.bills, l.err
}

// Generation returns the number of loads started so far.
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Range returns the date range of the latest load.
func (l *Loader) Range() congress.DateRange {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng
}
