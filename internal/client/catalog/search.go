package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ovasilenko/breedbook/internal/client/api"
	"github.com/ovasilenko/breedbook/internal/client/models"
	"github.com/ovasilenko/breedbook/internal/logging"
)

// ErrSuperseded is returned when a newer query arrived while this one was
// still inside its quiet period or in flight; its result must not be shown.
var ErrSuperseded = errors.New("search superseded by newer query")

// Result is one emission of the continuous search stream.
type Result struct {
	Breeds []models.Breed
	Err    error
}

// Search orchestrates breed searches. Empty queries are answered locally
// from the warm catalog cache; text queries go to the remote search
// endpoint behind a quiet period with last-query-wins semantics, so bursts
// of keystrokes collapse into one request and a stale result never
// overtakes a newer one.
type Search struct {
	api      api.Client
	catalog  *Catalog
	debounce time.Duration
	log      logging.Logger

	mu         sync.Mutex
	seq        uint64
	lastQuery  string
	lastResult []models.Breed
	haveLast   bool
}

func NewSearch(c api.Client, cat *Catalog, debounce time.Duration, log logging.Logger) *Search {
	return &Search{api: c, catalog: cat, debounce: debounce, log: log}
}

// Do runs a single-shot search.
//
// With an empty query and a warm catalog cache the result is a pure
// in-memory slice/sort of the cached list; no transport call is made.
// Remote lookups are accepted only after the quiet period passes with no
// newer call; a repeat of the previously accepted query is answered from
// the retained last result. Superseded calls fail with ErrSuperseded.
func (s *Search) Do(ctx context.Context, req models.SearchRequest) ([]models.Breed, error) {
	if req.Query == "" {
		if breeds, ok := s.catalog.Peek(); ok {
			return localSearch(breeds, req), nil
		}
	}

	s.mu.Lock()
	s.seq++
	my := s.seq
	s.mu.Unlock()

	t := time.NewTimer(s.debounce)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	if s.seq != my {
		s.mu.Unlock()
		return nil, ErrSuperseded
	}
	if s.haveLast && s.lastQuery == req.Query {
		out := copyBreeds(s.lastResult)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	breeds, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != my {
		return nil, ErrSuperseded
	}
	s.lastQuery = req.Query
	s.lastResult = breeds
	s.haveLast = true
	return copyBreeds(breeds), nil
}

// Stream consumes a live sequence of query strings and emits one result per
// accepted query. A query is accepted once the quiet period passes without
// newer input and its value differs from the previously accepted one.
// Results of superseded lookups are discarded, so delivery order always
// matches acceptance order. The output channel closes when ctx ends or the
// input closes and all work has drained.
func (s *Search) Stream(ctx context.Context, queries <-chan string) <-chan Result {
	out := make(chan Result)

	go func() {
		defer close(out)

		type seqResult struct {
			seq    uint64
			breeds []models.Breed
			err    error
		}

		var (
			timer    *time.Timer
			timerC   <-chan time.Time
			pending  string
			last     string
			haveLast bool
			cur      uint64
			inflight int
		)
		results := make(chan seqResult)
		in := queries

		for {
			if in == nil && timerC == nil && inflight == 0 {
				return
			}

			select {
			case q, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				pending = q
				if timer == nil {
					timer = time.NewTimer(s.debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(s.debounce)
				}
				timerC = timer.C

			case <-timerC:
				timerC = nil
				if haveLast && pending == last {
					continue // repeat of the previous accepted value
				}
				last = pending
				haveLast = true
				cur++
				seq := cur
				inflight++
				req := models.SearchRequest{Query: pending}
				go func() {
					breeds, err := s.lookup(ctx, req)
					select {
					case results <- seqResult{seq: seq, breeds: breeds, err: err}:
					case <-ctx.Done():
					}
				}()

			case r := <-results:
				inflight--
				if r.seq != cur {
					continue // a newer query superseded this lookup
				}
				select {
				case out <- Result{Breeds: r.breeds, Err: r.err}:
				case <-ctx.Done():
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// lookup branches between the local cached-list pipeline and the remote
// search endpoint. Debouncing is the caller's concern.
func (s *Search) lookup(ctx context.Context, req models.SearchRequest) ([]models.Breed, error) {
	if req.Query == "" {
		if breeds, ok := s.catalog.Peek(); ok {
			return localSearch(breeds, req), nil
		}
	}

	breeds, err := s.api.SearchBreeds(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "remote search failed", "query", req.Query, "error", err)
		return nil, fmt.Errorf("%s: %w", msgSearchFailed, err)
	}
	return breeds, nil
}

// localSearch paginates the cached list, then sorts the page by case-folded
// name, ascending unless DESC was requested.
func localSearch(breeds []models.Breed, req models.SearchRequest) []models.Breed {
	out := copyBreeds(breeds)

	if req.Page > 0 && req.Limit > 0 {
		start := (req.Page - 1) * req.Limit
		if start >= len(out) {
			out = []models.Breed{}
		} else {
			end := start + req.Limit
			if end > len(out) {
				end = len(out)
			}
			out = out[start:end]
		}
	}

	desc := req.Order == models.OrderDesc
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(out[i].Name)
		b := strings.ToLower(out[j].Name)
		if desc {
			return a > b
		}
		return a < b
	})

	return out
}
