package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-candidate-feed/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_LoadMoreUntilExhausted(t *testing.T) {
	src := &countingSource{inner: newSource(t, recentResumes(12)...)}
	agg := NewAggregator(src, AggregatorOptions{PageSize: 5})
	ctx := context.Background()

	assert.Equal(t, StateIdle, agg.State())
	assert.True(t, agg.HasMore())

	for _, want := range []int{5, 10, 12} {
		require.NoError(t, agg.LoadMore(ctx))
		assert.Len(t, agg.Items(), want)
		assert.Equal(t, StateReady, agg.State())
	}
	assert.False(t, agg.HasMore())

	// Exhausted: no further request.
	require.NoError(t, agg.LoadMore(ctx))
	assert.Len(t, agg.Items(), 12)
	assert.EqualValues(t, 3, src.calls.Load())

	items := agg.Items()
	assert.Equal(t, "c01", items[0].ID)
	assert.Equal(t, "c12", items[11].ID)
}

func TestAggregator_EmptyFeed(t *testing.T) {
	agg := NewAggregator(newSource(t), AggregatorOptions{PageSize: 5})

	require.NoError(t, agg.LoadMore(context.Background()))
	assert.Empty(t, agg.Items())
	assert.False(t, agg.HasMore())
	assert.Equal(t, StateReady, agg.State())
}

func TestAggregator_LoadMoreWhileInFlightIsNoop(t *testing.T) {
	src := hold(newSource(t, recentResumes(8)...), "")
	agg := NewAggregator(src, AggregatorOptions{PageSize: 5})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- agg.LoadMore(ctx) }()
	<-src.started

	assert.Equal(t, StateLoading, agg.State())
	require.NoError(t, agg.LoadMore(ctx))
	assert.EqualValues(t, 1, src.calls.Load())

	close(src.release)
	require.NoError(t, <-done)
	assert.Len(t, agg.Items(), 5)
}

func TestAggregator_FailureKeepsItems(t *testing.T) {
	src := &countingSource{inner: newSource(t, recentResumes(12)...), failAfter: 1}
	agg := NewAggregator(src, AggregatorOptions{PageSize: 5})
	ctx := context.Background()

	require.NoError(t, agg.LoadMore(ctx))

	err := agg.LoadMore(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Equal(t, StateError, agg.State())
	assert.ErrorIs(t, agg.Err(), domain.ErrStoreUnavailable)
	assert.Len(t, agg.Items(), 5)
	assert.True(t, agg.HasMore())

	// Retrying resumes from the same cursor.
	src.failAfter = 0
	require.NoError(t, agg.LoadMore(ctx))
	assert.Len(t, agg.Items(), 10)
	assert.Equal(t, "c06", agg.Items()[5].ID)
	assert.NoError(t, agg.Err())
}

func TestAggregator_FetchTimeout(t *testing.T) {
	agg := NewAggregator(slowSource{}, AggregatorOptions{PageSize: 5, FetchTimeout: 20 * time.Millisecond})

	err := agg.LoadMore(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateError, agg.State())
	assert.Empty(t, agg.Items())
}

func TestAggregator_DropsDuplicateIDs(t *testing.T) {
	src := &scriptedSource{pages: []*domain.FeedPage{
		{Items: profiles("a", "b"), NextCursor: "n1"},
		{Items: profiles("b", "c"), NextCursor: ""},
	}}
	agg := NewAggregator(src, AggregatorOptions{PageSize: 2})
	ctx := context.Background()

	require.NoError(t, agg.LoadMore(ctx))
	require.NoError(t, agg.LoadMore(ctx))

	assert.Equal(t, []string{"a", "b", "c"}, ids(agg.Items()))
	assert.False(t, agg.HasMore())
}

func TestAggregator_SignInRequiredForMore(t *testing.T) {
	var mu sync.Mutex
	user := ""
	agg := NewAggregator(newSource(t, recentResumes(12)...), AggregatorOptions{
		PageSize:             5,
		RequireSignInForMore: true,
		CurrentUser: func() string {
			mu.Lock()
			defer mu.Unlock()
			return user
		},
	})
	ctx := context.Background()

	require.NoError(t, agg.LoadMore(ctx))
	assert.ErrorIs(t, agg.LoadMore(ctx), domain.ErrNotSignedIn)
	assert.Len(t, agg.Items(), 5)
	assert.Equal(t, StateReady, agg.State())

	mu.Lock()
	user = "u1"
	mu.Unlock()
	require.NoError(t, agg.LoadMore(ctx))
	assert.Len(t, agg.Items(), 10)
}

func TestAggregator_SetFilterDiscardsStalePage(t *testing.T) {
	resumes := []domain.Resume{
		{ID: "e1", Profile: domain.ProfileInfo{Role: "Engineer"}, CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "e2", Profile: domain.ProfileInfo{Role: "Engineer"}, CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "d1", Profile: domain.ProfileInfo{Role: "Designer"}, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	src := hold(newSource(t, resumes...), "Eng")
	agg := NewAggregator(src, AggregatorOptions{PageSize: 5})
	ctx := context.Background()

	stale := make(chan error, 1)
	go func() { stale <- agg.SetFilter(ctx, domain.SearchFilter("Eng")) }()
	<-src.started

	require.NoError(t, agg.SetFilter(ctx, domain.SearchFilter("Des")))
	assert.Equal(t, []string{"d1"}, ids(agg.Items()))

	close(src.release)
	require.NoError(t, <-stale)

	assert.Equal(t, []string{"d1"}, ids(agg.Items()))
	assert.Equal(t, domain.SearchFilter("Des"), agg.Filter())
	assert.Equal(t, StateReady, agg.State())
}

func TestAggregator_RefreshStartsOver(t *testing.T) {
	agg := NewAggregator(newSource(t, recentResumes(12)...), AggregatorOptions{PageSize: 5})
	ctx := context.Background()

	require.NoError(t, agg.LoadMore(ctx))
	require.NoError(t, agg.LoadMore(ctx))
	require.Len(t, agg.Items(), 10)

	require.NoError(t, agg.Refresh(ctx))
	assert.Len(t, agg.Items(), 5)
	assert.Equal(t, "c01", agg.Items()[0].ID)
}

func TestAggregator_BlankSearchIsRecent(t *testing.T) {
	agg := NewAggregator(newSource(t, recentResumes(3)...), AggregatorOptions{PageSize: 5})

	require.NoError(t, agg.SetFilter(context.Background(), domain.SearchFilter("  ")))
	assert.Equal(t, domain.FilterRecent, agg.Filter().Mode)
	assert.Len(t, agg.Items(), 3)
}

func TestAggregator_OnChange(t *testing.T) {
	var mu sync.Mutex
	var states []State
	var agg *Aggregator
	agg = NewAggregator(newSource(t, recentResumes(3)...), AggregatorOptions{
		PageSize: 5,
		OnChange: func() {
			mu.Lock()
			states = append(states, agg.State())
			mu.Unlock()
		},
	})

	require.NoError(t, agg.LoadMore(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateLoading, StateReady}, states)
}

func TestAggregator_CategorySwitchShowsOnlyNewCategory(t *testing.T) {
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	resumes := []domain.Resume{
		{ID: "it1", Categories: []string{"Software & IT"}, CreatedAt: base},
		{ID: "sm1", Categories: []string{"Sales & Marketing"}, CreatedAt: base.Add(-time.Hour)},
		{ID: "it2", Categories: []string{"Software & IT"}, CreatedAt: base.Add(-2 * time.Hour)},
		{ID: "sm2", Categories: []string{"Sales & Marketing", "Software & IT"}, CreatedAt: base.Add(-3 * time.Hour)},
	}
	src := hold(newSource(t, resumes...), "Software & IT")
	agg := NewAggregator(src, AggregatorOptions{PageSize: 10})
	ctx := context.Background()

	stale := make(chan error, 1)
	go func() { stale <- agg.SetFilter(ctx, domain.CategoryFilter("Software & IT")) }()
	<-src.started
	assert.Empty(t, agg.Items())

	require.NoError(t, agg.SetFilter(ctx, domain.CategoryFilter("Sales & Marketing")))
	close(src.release)
	require.NoError(t, <-stale)

	assert.Equal(t, []string{"sm1", "sm2"}, ids(agg.Items()))
}
