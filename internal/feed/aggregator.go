package feed

import (
	"context"
	"sync"
	"time"

	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/logger"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateLoadingMore
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading_more"
	case StateError:
		return "error"
	}
	return "unknown"
}

const (
	DefaultPageSize     = 10
	DefaultFetchTimeout = 20 * time.Second
)

type AggregatorOptions struct {
	PageSize     int
	Filter       domain.FeedFilter
	FetchTimeout time.Duration
	// When set, pages after the first need CurrentUser to return a non-empty id.
	RequireSignInForMore bool
	CurrentUser          func() string
	// OnChange is called after every state change, outside the lock.
	OnChange func()
}

// Aggregator accumulates feed pages under one filter. At most one fetch is in flight; changing
// the filter starts a new epoch and results from older epochs are dropped.
type Aggregator struct {
	src  PageSource
	opts AggregatorOptions

	mu       sync.Mutex
	filter   domain.FeedFilter
	items    []domain.CandidateProfile
	seen     map[string]struct{}
	cursor   string
	hasMore  bool
	fetched  bool
	inFlight bool
	state    State
	err      error
	epoch    uint64
}

func NewAggregator(src PageSource, opts AggregatorOptions) *Aggregator {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Aggregator{
		src:    src,
		opts:   opts,
		filter: opts.Filter.Normalize(),
		seen:   make(map[string]struct{}),
	}
}

// LoadMore fetches the next page and appends it. It is a no-op while a fetch is in flight or
// once the feed is exhausted. On failure the accumulated items are kept and the error returned.
func (a *Aggregator) LoadMore(ctx context.Context) error {
	a.mu.Lock()
	if a.inFlight || (a.fetched && !a.hasMore) {
		a.mu.Unlock()
		return nil
	}
	if a.fetched && a.opts.RequireSignInForMore && a.currentUser() == "" {
		a.mu.Unlock()
		return domain.ErrNotSignedIn
	}

	q := domain.FeedQuery{PageSize: a.opts.PageSize, Cursor: a.cursor, Filter: a.filter}
	epoch := a.epoch
	a.inFlight = true
	if a.fetched {
		a.state = StateLoadingMore
	} else {
		a.state = StateLoading
	}
	a.mu.Unlock()
	a.changed()

	fetchCtx, cancel := context.WithTimeout(ctx, a.opts.FetchTimeout)
	page, err := a.src.FetchPage(fetchCtx, q)
	cancel()

	a.mu.Lock()
	if epoch != a.epoch {
		a.mu.Unlock()
		logger.Log.Debug("discarding stale feed page", "filter", q.Filter.String())
		return nil
	}
	a.inFlight = false
	if err != nil {
		a.state = StateError
		a.err = err
		a.mu.Unlock()
		a.changed()
		return err
	}

	for _, item := range page.Items {
		if _, dup := a.seen[item.ID]; dup {
			continue
		}
		a.seen[item.ID] = struct{}{}
		a.items = append(a.items, item)
	}
	a.cursor = page.NextCursor
	a.hasMore = page.NextCursor != ""
	a.fetched = true
	a.state = StateReady
	a.err = nil
	a.mu.Unlock()
	a.changed()
	return nil
}

// SetFilter clears the feed, switches to f and loads its first page. Any fetch still running
// under the previous filter is ignored when it completes.
func (a *Aggregator) SetFilter(ctx context.Context, f domain.FeedFilter) error {
	a.reset(f.Normalize())
	return a.LoadMore(ctx)
}

// Refresh reloads the current filter from its first page.
func (a *Aggregator) Refresh(ctx context.Context) error {
	return a.SetFilter(ctx, a.Filter())
}

func (a *Aggregator) reset(f domain.FeedFilter) {
	a.mu.Lock()
	a.epoch++
	a.filter = f
	a.items = nil
	a.seen = make(map[string]struct{})
	a.cursor = ""
	a.hasMore = false
	a.fetched = false
	a.inFlight = false
	a.state = StateIdle
	a.err = nil
	a.mu.Unlock()
	a.changed()
}

// Items returns a copy of the accumulated items in feed order.
func (a *Aggregator) Items() []domain.CandidateProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.CandidateProfile, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Aggregator) Filter() domain.FeedFilter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err is the error of the last failed fetch, cleared by the next successful one.
func (a *Aggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// HasMore reports whether LoadMore can still return items. It is true before the first page.
func (a *Aggregator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.fetched || a.hasMore
}

func (a *Aggregator) currentUser() string {
	if a.opts.CurrentUser == nil {
		return ""
	}
	return a.opts.CurrentUser()
}

func (a *Aggregator) changed() {
	if a.opts.OnChange != nil {
		a.opts.OnChange()
	}
}
