package feed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-candidate-feed/internal/catalog"
	"go-candidate-feed/internal/domain"
	"go-candidate-feed/internal/repository/memory"
	"go-candidate-feed/internal/usecase"
)

// newSource serves the given resumes through the real feed usecase.
func newSource(t *testing.T, resumes ...domain.Resume) PageSource {
	t.Helper()
	repo := memory.NewCandidateRepository(nil)
	repo.Seed(resumes...)
	return usecase.NewFeedUsecase(repo, usecase.NewCategoryUsecase(catalog.Default()), usecase.FeedConfig{
		DefaultPageSize: 10,
		MaxPageSize:     50,
	})
}

func recentResumes(n int) []domain.Resume {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Resume, n)
	for i := range out {
		out[i] = domain.Resume{
			ID:        fmt.Sprintf("c%02d", i+1),
			Profile:   domain.ProfileInfo{Role: "Engineer"},
			CreatedAt: base.Add(-time.Duration(i+1) * time.Minute),
		}
	}
	return out
}

// scriptedSource returns the given pages in order, then empty pages.
type scriptedSource struct {
	pages []*domain.FeedPage
	calls int
}

func (s *scriptedSource) FetchPage(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error) {
	s.calls++
	if s.calls > len(s.pages) {
		return &domain.FeedPage{}, nil
	}
	return s.pages[s.calls-1], nil
}

// slowSource never answers before the context ends.
type slowSource struct{}

func (slowSource) FetchPage(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func profiles(ids ...string) []domain.CandidateProfile {
	out := make([]domain.CandidateProfile, len(ids))
	for i, id := range ids {
		out[i] = domain.CandidateProfile{ID: id}
	}
	return out
}

// countingSource counts fetches and can hold fetches for one filter term until released.
type countingSource struct {
	inner     PageSource
	calls     atomic.Int32
	holdTerm  string
	holding   bool
	started   chan struct{}
	release   chan struct{}
	failAfter int32
}

func (s *countingSource) FetchPage(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error) {
	n := s.calls.Add(1)
	if s.holding && q.Filter.Term == s.holdTerm {
		select {
		case s.started <- struct{}{}:
		default:
		}
		<-s.release
	}
	if s.failAfter > 0 && n > s.failAfter {
		return nil, fmt.Errorf("failed to query profiles: %w", domain.ErrStoreUnavailable)
	}
	return s.inner.FetchPage(ctx, q)
}

func hold(inner PageSource, term string) *countingSource {
	return &countingSource{
		inner:    inner,
		holdTerm: term,
		holding:  true,
		started:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
}

// fakeStore keeps favorites in memory. before runs ahead of every mutation and may block or fail it.
type fakeStore struct {
	repo      *memory.FavoriteRepository
	mu        sync.Mutex
	before    func(op, id string) error
	beforeGet func()
	getErr    error
	gets      atomic.Int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{repo: memory.NewFavoriteRepository()}
}

func (s *fakeStore) hook() func(op, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.before
}

func (s *fakeStore) setBefore(fn func(op, id string) error) {
	s.mu.Lock()
	s.before = fn
	s.mu.Unlock()
}

func (s *fakeStore) GetFavorites(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	s.gets.Add(1)
	s.mu.Lock()
	beforeGet, getErr := s.beforeGet, s.getErr
	s.mu.Unlock()
	if getErr != nil {
		return nil, getErr
	}
	list, err := s.repo.Get(ctx, userID)
	if beforeGet != nil {
		beforeGet()
	}
	return list, err
}

func (s *fakeStore) AddFavorite(ctx context.Context, userID, id string) error {
	if h := s.hook(); h != nil {
		if err := h("add", id); err != nil {
			return err
		}
	}
	return s.repo.Add(ctx, userID, id)
}

func (s *fakeStore) RemoveFavorite(ctx context.Context, userID, id string) error {
	if h := s.hook(); h != nil {
		if err := h("remove", id); err != nil {
			return err
		}
	}
	return s.repo.Remove(ctx, userID, id)
}

type noticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (l *noticeLog) add(n Notice) {
	l.mu.Lock()
	l.notices = append(l.notices, n)
	l.mu.Unlock()
}

func (l *noticeLog) all() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notice(nil), l.notices...)
}

func ids(items []domain.CandidateProfile) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
