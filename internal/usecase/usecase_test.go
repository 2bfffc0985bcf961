package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go-candidate-feed/internal/catalog"
	"go-candidate-feed/internal/domain"
	"go-candidate-feed/internal/repository/memory"
	"go-candidate-feed/internal/usecase"
	"go-candidate-feed/pkg/apperror"
	"go-candidate-feed/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Query(ctx context.Context, q domain.ProfileQuery) ([]domain.CandidateProfile, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockCandidateRepo) GetSummaries(ctx context.Context, ids []string) (map[string]domain.CandidateProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) Upsert(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}

func (m *MockCandidateRepo) SetCategories(ctx context.Context, id string, categories []string) error {
	return m.Called(ctx, id, categories).Error(0)
}

type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Get(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoritesList), args.Error(1)
}

func (m *MockFavoriteRepo) Add(ctx context.Context, userID, candidateID string) error {
	return m.Called(ctx, userID, candidateID).Error(0)
}

func (m *MockFavoriteRepo) Remove(ctx context.Context, userID, candidateID string) error {
	return m.Called(ctx, userID, candidateID).Error(0)
}

func signedIn(userID string) context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, userID)
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func newFeed(repo domain.CandidateRepository, gated bool) domain.FeedUsecase {
	return usecase.NewFeedUsecase(repo, usecase.NewCategoryUsecase(catalog.Default()), usecase.FeedConfig{
		DefaultPageSize:    10,
		MaxPageSize:        50,
		RequireAuthForMore: gated,
		StoreTimeout:       time.Second,
	})
}

// seedRecent stores n candidates c01..cNN, c01 being the newest.
func seedRecent(n int) *memory.CandidateRepository {
	repo := memory.NewCandidateRepository(nil)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		repo.Seed(domain.Resume{
			ID:        fmt.Sprintf("c%02d", i),
			Profile:   domain.ProfileInfo{Name: fmt.Sprintf("Candidate %d", i), Role: "Engineer"},
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return repo
}

func pageIDs(p *domain.FeedPage) []string {
	ids := make([]string, len(p.Items))
	for i, item := range p.Items {
		ids[i] = item.ID
	}
	return ids
}

func TestFeedPagination(t *testing.T) {
	uc := newFeed(seedRecent(12), false)
	ctx := context.Background()

	first, err := uc.FetchPage(ctx, domain.FeedQuery{PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"c01", "c02", "c03", "c04", "c05"}, pageIDs(first))
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)

	second, err := uc.FetchPage(ctx, domain.FeedQuery{PageSize: 5, Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"c06", "c07", "c08", "c09", "c10"}, pageIDs(second))
	require.NotEmpty(t, second.NextCursor)

	third, err := uc.FetchPage(ctx, domain.FeedQuery{PageSize: 5, Cursor: second.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"c11", "c12"}, pageIDs(third))
	assert.False(t, third.HasMore)
	assert.Empty(t, third.NextCursor)

	for _, item := range append(append(first.Items, second.Items...), third.Items...) {
		assert.False(t, item.IsFavorited)
	}
}

func TestFeedPagesAreDisjointAndEndCleanly(t *testing.T) {
	for _, size := range []int{1, 3, 4, 7, 12, 50} {
		t.Run(fmt.Sprintf("page size %d", size), func(t *testing.T) {
			uc := newFeed(seedRecent(12), false)
			seen := map[string]bool{}
			next := ""
			for pages := 0; ; pages++ {
				require.Less(t, pages, 20)
				page, err := uc.FetchPage(context.Background(), domain.FeedQuery{PageSize: size, Cursor: next})
				require.NoError(t, err)
				for _, item := range page.Items {
					assert.False(t, seen[item.ID], "duplicate %s", item.ID)
					seen[item.ID] = true
				}
				assert.Equal(t, page.HasMore, page.NextCursor != "")
				if page.NextCursor == "" {
					break
				}
				assert.NotEmpty(t, page.Items)
				next = page.NextCursor
			}
			assert.Len(t, seen, 12)
		})
	}
}

func TestFeedEmptyStore(t *testing.T) {
	uc := newFeed(memory.NewCandidateRepository(nil), false)

	page, err := uc.FetchPage(context.Background(), domain.FeedQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextCursor)
	assert.False(t, page.HasMore)
}

func TestFeedSearchByRolePrefix(t *testing.T) {
	repo := memory.NewCandidateRepository(nil)
	now := time.Now()
	repo.Seed(
		domain.Resume{ID: "a", Profile: domain.ProfileInfo{Role: "Software Engineer"}, CreatedAt: now},
		domain.Resume{ID: "b", Profile: domain.ProfileInfo{Role: "Software Engineering Intern"}, CreatedAt: now},
		domain.Resume{ID: "c", Profile: domain.ProfileInfo{Role: "Product Manager"}, CreatedAt: now},
	)
	uc := newFeed(repo, false)

	page, err := uc.FetchPage(context.Background(), domain.FeedQuery{Filter: domain.SearchFilter("Software Engineer")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, pageIDs(page))
	assert.Empty(t, page.NextCursor)
}

func TestFeedCategoryFilter(t *testing.T) {
	repo := memory.NewCandidateRepository(nil)
	now := time.Now()
	repo.Seed(
		domain.Resume{ID: "it", Categories: []string{"Software & IT"}, CreatedAt: now},
		domain.Resume{ID: "sales", Categories: []string{"Sales & Marketing"}, CreatedAt: now.Add(-time.Minute)},
		domain.Resume{ID: "both", Categories: []string{"Sales & Marketing", "Software & IT"}, CreatedAt: now.Add(-2 * time.Minute)},
	)
	uc := newFeed(repo, false)

	page, err := uc.FetchPage(context.Background(), domain.FeedQuery{Filter: domain.CategoryFilter("Sales & Marketing")})
	require.NoError(t, err)
	assert.Equal(t, []string{"sales", "both"}, pageIDs(page))

	_, err = uc.FetchPage(context.Background(), domain.FeedQuery{Filter: domain.CategoryFilter("Astronaut")})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestFeedCursorValidation(t *testing.T) {
	uc := newFeed(seedRecent(6), false)
	ctx := context.Background()

	first, err := uc.FetchPage(ctx, domain.FeedQuery{PageSize: 2})
	require.NoError(t, err)

	t.Run("Should reject a cursor issued under another filter", func(t *testing.T) {
		_, err := uc.FetchPage(ctx, domain.FeedQuery{PageSize: 2, Cursor: first.NextCursor, Filter: domain.SearchFilter("Eng")})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidCursor)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := uc.FetchPage(ctx, domain.FeedQuery{Cursor: "%%%"})
		assert.ErrorIs(t, err, domain.ErrInvalidCursor)
	})

	t.Run("Should reject page size out of range", func(t *testing.T) {
		_, err := uc.FetchPage(ctx, domain.FeedQuery{PageSize: 51})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))

		_, err = uc.FetchPage(ctx, domain.FeedQuery{PageSize: -1})
		require.Error(t, err)
	})
}

func TestFeedCursorToDeletedProfile(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := newFeed(mockRepo, false)

	mockRepo.On("Query", mock.Anything, mock.Anything).Return([]domain.CandidateProfile{{ID: "a"}, {ID: "b"}}, nil).Once()
	first, err := uc.FetchPage(context.Background(), domain.FeedQuery{PageSize: 1})
	require.NoError(t, err)

	mockRepo.On("Query", mock.Anything, mock.MatchedBy(func(q domain.ProfileQuery) bool {
		return q.AfterID == "a" && q.Limit == 2
	})).Return(nil, domain.ErrInvalidCursor).Once()

	_, err = uc.FetchPage(context.Background(), domain.FeedQuery{PageSize: 1, Cursor: first.NextCursor})
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)
	mockRepo.AssertExpectations(t)
}

func TestFeedSignInGate(t *testing.T) {
	uc := newFeed(seedRecent(4), true)

	first, err := uc.FetchPage(context.Background(), domain.FeedQuery{PageSize: 2})
	require.NoError(t, err, "first page is public")

	_, err = uc.FetchPage(context.Background(), domain.FeedQuery{PageSize: 2, Cursor: first.NextCursor})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotSignedIn)
	assert.Equal(t, http.StatusUnauthorized, appCode(t, err))

	more, err := uc.FetchPage(signedIn("u1"), domain.FeedQuery{PageSize: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Len(t, more.Items, 2)
}

func TestFeedStoreUnavailable(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := newFeed(mockRepo, false)
	storeErr := fmt.Errorf("failed to query profiles: %w", domain.ErrStoreUnavailable)
	mockRepo.On("Query", mock.Anything, mock.Anything).Return(nil, storeErr)

	_, err := uc.FetchPage(context.Background(), domain.FeedQuery{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestGetFavorites(t *testing.T) {
	favs := memory.NewFavoriteRepository()
	uc := usecase.NewFavoriteUsecase(favs, memory.NewCandidateRepository(nil), time.Second)

	t.Run("Should return an empty list for a user without favorites", func(t *testing.T) {
		list, err := uc.GetFavorites(signedIn("new-user"), "new-user")
		require.NoError(t, err)
		assert.NotNil(t, list.Favorites)
		assert.Empty(t, list.Favorites)
	})

	t.Run("Should fail when not signed in", func(t *testing.T) {
		_, err := uc.GetFavorites(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrNotSignedIn)
	})

	t.Run("Should fail when Context UserID does not match Argument UserID", func(t *testing.T) {
		_, err := uc.GetFavorites(signedIn("user1"), "user2")
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
	})
}

func TestFavoriteMutationsAreIdempotent(t *testing.T) {
	favs := memory.NewFavoriteRepository()
	uc := usecase.NewFavoriteUsecase(favs, memory.NewCandidateRepository(nil), time.Second)
	ctx := signedIn("u1")

	require.NoError(t, uc.AddFavorite(ctx, "u1", "c1"))
	require.NoError(t, uc.AddFavorite(ctx, "u1", "c1"))
	list, err := uc.GetFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, list.IDs())

	require.NoError(t, uc.RemoveFavorite(ctx, "u1", "c2"))
	list, err = uc.GetFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list.Favorites, 1)

	err = uc.AddFavorite(ctx, "u1", " ")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))

	assert.ErrorIs(t, uc.AddFavorite(context.Background(), "", "c1"), domain.ErrNotSignedIn)
}

func TestFavoriteMutationStoreFailure(t *testing.T) {
	mockFavs := new(MockFavoriteRepo)
	uc := usecase.NewFavoriteUsecase(mockFavs, new(MockCandidateRepo), time.Second)
	storeErr := fmt.Errorf("failed to add favorite: %w", domain.ErrStoreUnavailable)
	mockFavs.On("Add", mock.Anything, "u1", "c1").Return(storeErr)

	err := uc.AddFavorite(signedIn("u1"), "u1", "c1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	mockFavs.AssertExpectations(t)
}

func TestGetFavoriteProfiles(t *testing.T) {
	candidates := seedRecent(15)
	favs := memory.NewFavoriteRepository()
	uc := usecase.NewFavoriteUsecase(favs, candidates, time.Second)
	ctx := signedIn("u1")

	want := []string{"c14", "c02", "gone", "c07", "c01", "c03", "c04", "c05", "c06", "c08", "c09", "c10"}
	for _, id := range want {
		require.NoError(t, favs.Add(ctx, "u1", id))
	}

	profiles, err := uc.GetFavoriteProfiles(ctx, "u1")
	require.NoError(t, err)

	var got []string
	for _, p := range profiles {
		assert.True(t, p.IsFavorited)
		got = append(got, p.ID)
	}
	assert.Equal(t, []string{"c14", "c02", "c07", "c01", "c03", "c04", "c05", "c06", "c08", "c09", "c10"}, got)
}

func TestCandidateIDOR(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	cats := usecase.NewCategoryUsecase(catalog.Default())
	uc := usecase.NewCandidateUsecase(mockRepo, cats, validation.New(cats.Exists), time.Second)

	t.Run("Should fail when Context UserID does not match Argument UserID", func(t *testing.T) {
		_, err := uc.GetOwnResume(signedIn("user1"), "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only access your own resume")
	})

	t.Run("Should fail safely when Context UserID is nil", func(t *testing.T) {
		_, err := uc.GetOwnResume(context.Background(), "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should force ID from context on save", func(t *testing.T) {
		mockRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *domain.Resume) bool {
			return r.ID == "user1"
		})).Return(nil).Once()

		saved, err := uc.SaveResume(signedIn("user1"), &domain.Resume{
			ID:      "hacker_try",
			Profile: domain.ProfileInfo{Name: "Ana Lima", Role: "Engineer"},
		})
		require.NoError(t, err)
		assert.Equal(t, "user1", saved.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestSaveResumeValidation(t *testing.T) {
	repo := memory.NewCandidateRepository(nil)
	cats := usecase.NewCategoryUsecase(catalog.Default())
	uc := usecase.NewCandidateUsecase(repo, cats, validation.New(cats.Exists), time.Second)
	ctx := signedIn("user1")

	_, err := uc.SaveResume(ctx, &domain.Resume{Categories: []string{"Astronaut"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))

	first, err := uc.SaveResume(ctx, &domain.Resume{
		Profile:    domain.ProfileInfo{Name: "Ana Lima", Role: "Engineer"},
		Categories: []string{"Software & IT", "Software & IT"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Software & IT"}, first.Categories)
	created := first.CreatedAt
	require.False(t, created.IsZero())

	second, err := uc.SaveResume(ctx, &domain.Resume{Profile: domain.ProfileInfo{Name: "Ana Lima", Role: "Lead"}})
	require.NoError(t, err)
	assert.True(t, created.Equal(second.CreatedAt))
}

func TestSetCategories(t *testing.T) {
	repo := memory.NewCandidateRepository(nil)
	cats := usecase.NewCategoryUsecase(catalog.Default())
	uc := usecase.NewCandidateUsecase(repo, cats, validation.New(cats.Exists), time.Second)
	ctx := signedIn("user1")

	err := uc.SetCategories(ctx, "user1", []string{"Software & IT"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	repo.Seed(domain.Resume{ID: "user1", CreatedAt: time.Now()})
	require.NoError(t, uc.SetCategories(ctx, "user1", []string{"Software & IT", "Healthcare"}))

	res, err := repo.GetByID(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Software & IT", "Healthcare"}, res.Categories)

	err = uc.SetCategories(ctx, "user1", []string{"Astronaut"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"store": func(ctx context.Context) error { return nil },
		"redis": nil,
	})
	assert.Equal(t, map[string]string{"status": "ok", "store": "up", "redis": "disabled"}, uc.Check(context.Background()))

	down := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"store": func(ctx context.Context) error { return errors.New("boom") },
	})
	assert.Equal(t, "degraded", down.Check(context.Background())["status"])
}
