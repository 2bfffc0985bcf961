package feed

import (
	"context"
	"sync"
	"time"

	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// Outcome is how an optimistic favorite change settled.
type Outcome int

const (
	// OutcomeCommitted: the store accepted the change and it is still the latest for the id.
	OutcomeCommitted Outcome = iota
	// OutcomeRolledBack: the store rejected the latest change; the display reverted.
	OutcomeRolledBack
	// OutcomeSuperseded: a newer change for the same id was started before this one settled.
	OutcomeSuperseded
	// OutcomeRejected: nothing was attempted because no user is signed in.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeRolledBack:
		return "rolled_back"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

type FavoritesOptions struct {
	Timeout time.Duration
	// RefreshOnCommit reloads the list from the store after every committed change.
	RefreshOnCommit bool
	OnNotice        func(Notice)
	OnChange        func()
}

type pendingChange struct {
	gen      uint64
	want     bool
	inFlight int
}

type loadResult struct {
	list     *domain.FavoritesList
	startSeq uint64
}

// Favorites is the session's view of one user's favorites. The displayed value of an id is the
// latest optimistic change while one is in flight, and the store's confirmed value otherwise.
type Favorites struct {
	store FavoritesStore
	opts  FavoritesOptions
	sf    singleflight.Group
	wg    sync.WaitGroup

	mu        sync.Mutex
	userID    string
	userEpoch uint64
	confirmed map[string]struct{}
	pending   map[string]*pendingChange
	loaded    bool
	gen       uint64
	// seq orders settles against loads so a slow load cannot undo a newer settle.
	seq     uint64
	settled map[string]uint64
}

func NewFavorites(store FavoritesStore, userID string, opts FavoritesOptions) *Favorites {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	return &Favorites{
		store:     store,
		opts:      opts,
		userID:    userID,
		confirmed: make(map[string]struct{}),
		pending:   make(map[string]*pendingChange),
		settled:   make(map[string]uint64),
	}
}

func (f *Favorites) UserID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID
}

// SetUser switches the signed-in user (empty for signed out) and forgets everything known about
// the previous one. In-flight loads and changes for the previous user are ignored.
func (f *Favorites) SetUser(userID string) {
	f.mu.Lock()
	f.userID = userID
	f.userEpoch++
	f.confirmed = make(map[string]struct{})
	f.pending = make(map[string]*pendingChange)
	f.settled = make(map[string]uint64)
	f.loaded = false
	f.mu.Unlock()
	f.changed()
}

// Load fetches the favorites list. Concurrent calls share one request. A signed-out session
// loads as empty without touching the store.
func (f *Favorites) Load(ctx context.Context) error {
	f.mu.Lock()
	userID, epoch := f.userID, f.userEpoch
	f.mu.Unlock()

	if userID == "" {
		f.mu.Lock()
		if epoch == f.userEpoch {
			f.loaded = true
		}
		f.mu.Unlock()
		return nil
	}

	// Callers joining a shared request get its answer, so the settle cutoff is taken when that
	// request starts rather than when each caller arrives.
	v, err, _ := f.sf.Do(userID, func() (interface{}, error) {
		f.mu.Lock()
		startSeq := f.seq
		f.mu.Unlock()

		loadCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
		list, err := f.store.GetFavorites(loadCtx, userID)
		if err != nil {
			return nil, err
		}
		return loadResult{list: list, startSeq: startSeq}, nil
	})
	if err != nil {
		return err
	}
	res := v.(loadResult)
	list, startSeq := res.list, res.startSeq

	f.mu.Lock()
	if epoch != f.userEpoch {
		f.mu.Unlock()
		return nil
	}
	next := list.Set()
	for id, at := range f.settled {
		if at <= startSeq {
			delete(f.settled, id)
			continue
		}
		// Settled after this load started: the store answer may predate it.
		if _, ok := f.confirmed[id]; ok {
			next[id] = struct{}{}
		} else {
			delete(next, id)
		}
	}
	f.confirmed = next
	f.loaded = true
	f.mu.Unlock()
	f.changed()
	return nil
}

// Invalidate reloads the list in the background. Pending changes keep their optimistic value.
func (f *Favorites) Invalidate() {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		if err := f.Load(context.Background()); err != nil {
			logger.Log.Warn("favorites refresh failed", "error", err)
		}
	}()
}

// Wait blocks until background refreshes started by Invalidate have finished.
func (f *Favorites) Wait() {
	f.wg.Wait()
}

func (f *Favorites) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

// IsFavorited is false for every id until the list has loaded, unless a change is pending.
func (f *Favorites) IsFavorited(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.displayed(id)
}

func (f *Favorites) displayed(id string) bool {
	if p, ok := f.pending[id]; ok {
		return p.want
	}
	_, ok := f.confirmed[id]
	return ok
}

// IDs returns the displayed favorite ids, confirmed and pending.
func (f *Favorites) IDs() map[string]struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]struct{}, len(f.confirmed)+len(f.pending))
	for id := range f.confirmed {
		out[id] = struct{}{}
	}
	for id, p := range f.pending {
		if p.want {
			out[id] = struct{}{}
		} else {
			delete(out, id)
		}
	}
	return out
}

// Toggle flips the displayed value of id and persists it.
func (f *Favorites) Toggle(ctx context.Context, id string) (Outcome, error) {
	return f.Set(ctx, id, !f.IsFavorited(id))
}

// Set shows want for id immediately, then writes it to the store. If that write fails and no
// newer change for id was started meanwhile, the display reverts to the store's value and a
// notice is emitted.
func (f *Favorites) Set(ctx context.Context, id string, want bool) (Outcome, error) {
	f.mu.Lock()
	userID, epoch := f.userID, f.userEpoch
	if userID == "" {
		f.mu.Unlock()
		f.notify(Notice{Kind: NoticeSignIn, CandidateID: id, Message: MsgSignInRequired})
		return OutcomeRejected, domain.ErrNotSignedIn
	}
	f.gen++
	gen := f.gen
	p, ok := f.pending[id]
	if !ok {
		p = &pendingChange{}
		f.pending[id] = p
	}
	p.gen = gen
	p.want = want
	p.inFlight++
	f.mu.Unlock()
	f.changed()

	writeCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	var err error
	if want {
		err = f.store.AddFavorite(writeCtx, userID, id)
	} else {
		err = f.store.RemoveFavorite(writeCtx, userID, id)
	}
	cancel()

	f.mu.Lock()
	if epoch != f.userEpoch {
		f.mu.Unlock()
		return OutcomeSuperseded, err
	}
	f.seq++
	if err == nil {
		if want {
			f.confirmed[id] = struct{}{}
		} else {
			delete(f.confirmed, id)
		}
		f.settled[id] = f.seq
	}
	latest := p.gen == gen
	p.inFlight--
	if p.inFlight == 0 {
		delete(f.pending, id)
	} else if latest && err != nil {
		// Older changes are still in flight; show the last confirmed value until they settle.
		_, p.want = f.confirmed[id]
	}
	f.mu.Unlock()
	f.changed()

	switch {
	case !latest:
		return OutcomeSuperseded, err
	case err != nil:
		notice := Notice{Kind: NoticeSaveFailed, CandidateID: id, Message: MsgSaveFailed}
		if !want {
			notice = Notice{Kind: NoticeRemoveFailed, CandidateID: id, Message: MsgRemoveFailed}
		}
		f.notify(notice)
		logger.Log.Warn("favorite change rolled back", "candidate_id", id, "want", want, "error", err)
		return OutcomeRolledBack, err
	}

	if f.opts.RefreshOnCommit {
		f.Invalidate()
	}
	return OutcomeCommitted, nil
}

func (f *Favorites) notify(n Notice) {
	if f.opts.OnNotice != nil {
		f.opts.OnNotice(n)
	}
}

func (f *Favorites) changed() {
	if f.opts.OnChange != nil {
		f.opts.OnChange()
	}
}
