package feed

import (
	"context"
	"errors"
	"time"

	"go-candidate-feed/internal/domain"

	"golang.org/x/sync/errgroup"
)

type SessionOptions struct {
	PageSize             int
	Filter               domain.FeedFilter
	Timeout              time.Duration
	RequireSignInForMore bool
	OnNotice             func(Notice)
	OnChange             func()
}

// Session ties one feed to one user's favorites and renders the joined view.
type Session struct {
	feed      *Aggregator
	favorites *Favorites
}

func NewSession(src PageSource, store FavoritesStore, userID string, opts SessionOptions) *Session {
	favorites := NewFavorites(store, userID, FavoritesOptions{
		Timeout:         opts.Timeout,
		RefreshOnCommit: true,
		OnNotice:        opts.OnNotice,
		OnChange:        opts.OnChange,
	})
	feed := NewAggregator(src, AggregatorOptions{
		PageSize:             opts.PageSize,
		Filter:               opts.Filter,
		FetchTimeout:         opts.Timeout,
		RequireSignInForMore: opts.RequireSignInForMore,
		CurrentUser:          favorites.UserID,
		OnChange:             opts.OnChange,
	})
	return &Session{feed: feed, favorites: favorites}
}

func (s *Session) Feed() *Aggregator { return s.feed }

func (s *Session) Favorites() *Favorites { return s.favorites }

// Start loads the first page and the favorites list concurrently. Each runs to completion on
// its own; a failure of one leaves the other's result in place.
func (s *Session) Start(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.feed.LoadMore(ctx) })
	g.Go(func() error { return s.favorites.Load(ctx) })
	return g.Wait()
}

// Candidates is the feed joined with the favorites as currently displayed.
func (s *Session) Candidates() []domain.CandidateProfile {
	return domain.MarkFavorites(s.feed.Items(), s.favorites.IDs())
}

// LoadMore fetches the next page. A signed-out user hitting the sign-in gate gets a notice.
func (s *Session) LoadMore(ctx context.Context) error {
	err := s.feed.LoadMore(ctx)
	if errors.Is(err, domain.ErrNotSignedIn) {
		s.favorites.notify(Notice{Kind: NoticeSignIn, Message: MsgSignInForMore})
	}
	return err
}

func (s *Session) SetFilter(ctx context.Context, f domain.FeedFilter) error {
	return s.feed.SetFilter(ctx, f)
}

func (s *Session) Toggle(ctx context.Context, candidateID string) (Outcome, error) {
	return s.favorites.Toggle(ctx, candidateID)
}

// SignIn switches the session to userID and loads their favorites. The feed is kept.
func (s *Session) SignIn(ctx context.Context, userID string) error {
	s.favorites.SetUser(userID)
	return s.favorites.Load(ctx)
}

func (s *Session) SignOut() {
	s.favorites.SetUser("")
}

// Close waits for background favorite refreshes.
func (s *Session) Close() {
	s.favorites.Wait()
}
