package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-candidate-feed/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("write failed")

// blockOn holds mutations of kind op until release is closed, then returns err.
func blockOn(op string, started chan<- struct{}, release <-chan struct{}, err error) func(string, string) error {
	return func(o, id string) error {
		if o != op {
			return nil
		}
		started <- struct{}{}
		<-release
		return err
	}
}

func TestFavorites_SignedOutIsRejected(t *testing.T) {
	store := newFakeStore()
	notices := &noticeLog{}
	favs := NewFavorites(store, "", FavoritesOptions{OnNotice: notices.add})

	outcome, err := favs.Toggle(context.Background(), "c1")
	assert.Equal(t, OutcomeRejected, outcome)
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
	assert.False(t, favs.IsFavorited("c1"))
	assert.Equal(t, []Notice{{Kind: NoticeSignIn, CandidateID: "c1", Message: MsgSignInRequired}}, notices.all())

	require.NoError(t, favs.Load(context.Background()))
	assert.True(t, favs.Loaded())
	assert.EqualValues(t, 0, store.gets.Load())
}

func TestFavorites_FalseUntilLoaded(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.repo.Add(context.Background(), "u1", "c1"))
	favs := NewFavorites(store, "u1", FavoritesOptions{})

	assert.False(t, favs.Loaded())
	assert.False(t, favs.IsFavorited("c1"))
	assert.Empty(t, favs.IDs())

	require.NoError(t, favs.Load(context.Background()))
	assert.True(t, favs.IsFavorited("c1"))
	assert.False(t, favs.IsFavorited("c2"))
	assert.Equal(t, map[string]struct{}{"c1": {}}, favs.IDs())
}

func TestFavorites_OptimisticAddCommits(t *testing.T) {
	store := newFakeStore()
	favs := NewFavorites(store, "u1", FavoritesOptions{})
	require.NoError(t, favs.Load(context.Background()))

	started, release := make(chan struct{}, 1), make(chan struct{})
	store.setBefore(blockOn("add", started, release, nil))

	result := make(chan Outcome, 1)
	go func() {
		outcome, _ := favs.Toggle(context.Background(), "c1")
		result <- outcome
	}()
	<-started

	// Shown before the store has answered.
	assert.True(t, favs.IsFavorited("c1"))

	close(release)
	assert.Equal(t, OutcomeCommitted, <-result)
	assert.True(t, favs.IsFavorited("c1"))

	list, err := store.repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, list.Contains("c1"))
}

func TestFavorites_FailedAddRollsBack(t *testing.T) {
	store := newFakeStore()
	notices := &noticeLog{}
	favs := NewFavorites(store, "u1", FavoritesOptions{OnNotice: notices.add})
	require.NoError(t, favs.Load(context.Background()))

	started, release := make(chan struct{}, 1), make(chan struct{})
	store.setBefore(blockOn("add", started, release, errWriteFailed))

	type result struct {
		outcome Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := favs.Toggle(context.Background(), "c1")
		done <- result{outcome, err}
	}()
	<-started
	assert.True(t, favs.IsFavorited("c1"))

	close(release)
	r := <-done
	assert.Equal(t, OutcomeRolledBack, r.outcome)
	assert.ErrorIs(t, r.err, errWriteFailed)
	assert.False(t, favs.IsFavorited("c1"))
	assert.Equal(t, []Notice{{Kind: NoticeSaveFailed, CandidateID: "c1", Message: MsgSaveFailed}}, notices.all())
}

func TestFavorites_FailedRemoveRestores(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.repo.Add(context.Background(), "u1", "c1"))
	notices := &noticeLog{}
	favs := NewFavorites(store, "u1", FavoritesOptions{OnNotice: notices.add})
	require.NoError(t, favs.Load(context.Background()))

	store.setBefore(func(op, id string) error { return errWriteFailed })

	outcome, err := favs.Toggle(context.Background(), "c1")
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.Error(t, err)
	assert.True(t, favs.IsFavorited("c1"))
	assert.Equal(t, MsgRemoveFailed, notices.all()[0].Message)
	assert.Equal(t, NoticeRemoveFailed, notices.all()[0].Kind)
}

func TestFavorites_LatestChangeWins(t *testing.T) {
	store := newFakeStore()
	favs := NewFavorites(store, "u1", FavoritesOptions{})
	require.NoError(t, favs.Load(context.Background()))
	ctx := context.Background()

	started, release := make(chan struct{}, 1), make(chan struct{})
	store.setBefore(func(op, id string) error {
		if op == "add" {
			started <- struct{}{}
			<-release
			return nil
		}
		return errWriteFailed
	})

	first := make(chan Outcome, 1)
	go func() {
		outcome, _ := favs.Set(ctx, "c1", true)
		first <- outcome
	}()
	<-started

	// The newer change fails while the older one is still in flight: show the confirmed value.
	outcome, err := favs.Set(ctx, "c1", false)
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.ErrorIs(t, err, errWriteFailed)
	assert.False(t, favs.IsFavorited("c1"))

	// The older change lands without being reported as the user's latest action.
	close(release)
	assert.Equal(t, OutcomeSuperseded, <-first)

	list, err := store.repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, list.Contains("c1"), favs.IsFavorited("c1"))
}

func TestFavorites_LoadKeepsPendingChanges(t *testing.T) {
	store := newFakeStore()
	favs := NewFavorites(store, "u1", FavoritesOptions{})
	ctx := context.Background()

	started, release := make(chan struct{}, 1), make(chan struct{})
	store.setBefore(blockOn("add", started, release, nil))

	done := make(chan Outcome, 1)
	go func() {
		outcome, _ := favs.Set(ctx, "c2", true)
		done <- outcome
	}()
	<-started

	require.NoError(t, store.repo.Add(ctx, "u1", "c1"))
	require.NoError(t, favs.Load(ctx))
	assert.True(t, favs.IsFavorited("c1"))
	assert.True(t, favs.IsFavorited("c2"))

	close(release)
	assert.Equal(t, OutcomeCommitted, <-done)
	assert.Equal(t, map[string]struct{}{"c1": {}, "c2": {}}, favs.IDs())
}

func TestFavorites_SlowLoadDoesNotUndoNewerChange(t *testing.T) {
	store := newFakeStore()
	favs := NewFavorites(store, "u1", FavoritesOptions{})
	ctx := context.Background()

	loading, release := make(chan struct{}, 1), make(chan struct{})
	store.mu.Lock()
	store.beforeGet = func() {
		loading <- struct{}{}
		<-release
	}
	store.mu.Unlock()

	loaded := make(chan error, 1)
	go func() { loaded <- favs.Load(ctx) }()
	<-loading

	// The load has already read an empty list when this commits.
	outcome, err := favs.Set(ctx, "c1", true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)

	close(release)
	require.NoError(t, <-loaded)
	assert.True(t, favs.IsFavorited("c1"))
}

func TestFavorites_RefreshJoiningEarlierLoadKeepsCommit(t *testing.T) {
	store := newFakeStore()
	favs := NewFavorites(store, "u1", FavoritesOptions{})
	ctx := context.Background()

	loading, release := make(chan struct{}, 1), make(chan struct{})
	store.mu.Lock()
	store.beforeGet = func() {
		select {
		case loading <- struct{}{}:
		default:
		}
		<-release
	}
	store.mu.Unlock()

	first := make(chan error, 1)
	go func() { first <- favs.Load(ctx) }()
	<-loading

	outcome, err := favs.Set(ctx, "c1", true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)

	// The refresh shares the request that read the store before the commit.
	favs.Invalidate()
	time.Sleep(20 * time.Millisecond)
	close(release)

	require.NoError(t, <-first)
	favs.Wait()

	stored, err := store.repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stored.Contains("c1"))
	assert.True(t, favs.IsFavorited("c1"))
	assert.EqualValues(t, 1, store.gets.Load())
}

func TestFavorites_SetUserDropsInFlightChange(t *testing.T) {
	store := newFakeStore()
	favs := NewFavorites(store, "u1", FavoritesOptions{})
	require.NoError(t, favs.Load(context.Background()))

	started, release := make(chan struct{}, 1), make(chan struct{})
	store.setBefore(blockOn("add", started, release, nil))

	done := make(chan Outcome, 1)
	go func() {
		outcome, _ := favs.Set(context.Background(), "c1", true)
		done <- outcome
	}()
	<-started

	favs.SetUser("u2")
	close(release)

	assert.Equal(t, OutcomeSuperseded, <-done)
	assert.Equal(t, "u2", favs.UserID())
	assert.False(t, favs.Loaded())
	assert.False(t, favs.IsFavorited("c1"))
}

func TestFavorites_RefreshOnCommit(t *testing.T) {
	store := newFakeStore()
	favs := NewFavorites(store, "u1", FavoritesOptions{RefreshOnCommit: true})
	ctx := context.Background()
	require.NoError(t, favs.Load(ctx))

	_, err := favs.Set(ctx, "c1", true)
	require.NoError(t, err)
	favs.Wait()

	assert.EqualValues(t, 2, store.gets.Load())
	assert.True(t, favs.IsFavorited("c1"))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "committed", OutcomeCommitted.String())
	assert.Equal(t, "rolled_back", OutcomeRolledBack.String())
	assert.Equal(t, "superseded", OutcomeSuperseded.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
}
