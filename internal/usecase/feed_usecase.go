package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/apperror"
	"go-candidate-feed/pkg/cursor"
)

type FeedConfig struct {
	DefaultPageSize    int
	MaxPageSize        int
	RequireAuthForMore bool
	StoreTimeout       time.Duration
}

type feedUsecase struct {
	repo       domain.CandidateRepository
	categories domain.CategoryUsecase
	cfg        FeedConfig
}

func NewFeedUsecase(repo domain.CandidateRepository, categories domain.CategoryUsecase, cfg FeedConfig) domain.FeedUsecase {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &feedUsecase{repo: repo, categories: categories, cfg: cfg}
}

// FetchPage returns one page of the feed. Pages are read with one row of lookahead, so a page
// carries a cursor only when at least one more item exists under the same filter.
func (u *feedUsecase) FetchPage(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error) {
	size := q.PageSize
	if size == 0 {
		size = u.cfg.DefaultPageSize
	}
	if size < 1 || size > u.cfg.MaxPageSize {
		return nil, apperror.BadRequest(fmt.Sprintf("limit must be between 1 and %d", u.cfg.MaxPageSize))
	}

	filter := q.Filter.Normalize()
	switch filter.Mode {
	case domain.FilterRecent, domain.FilterSearch:
	case domain.FilterCategory:
		if !u.categories.Exists(filter.Term) {
			return nil, apperror.BadRequest("Unknown category")
		}
	default:
		return nil, apperror.BadRequest("Unknown filter mode")
	}

	var afterID string
	if q.Cursor != "" {
		if u.cfg.RequireAuthForMore && domain.UserIDFrom(ctx) == "" {
			return nil, apperror.New(http.StatusUnauthorized, "Sign in to see more", domain.ErrNotSignedIn)
		}
		tok, err := cursor.Decode(q.Cursor)
		if err != nil || !tok.Matches(string(filter.Mode), filter.Term) {
			return nil, apperror.BadRequestWrap("Invalid cursor", domain.ErrInvalidCursor)
		}
		afterID = tok.ID
	}

	ctx, cancel := withTimeout(ctx, u.cfg.StoreTimeout)
	defer cancel()

	rows, err := u.repo.Query(ctx, domain.ProfileQuery{Filter: filter, AfterID: afterID, Limit: size + 1})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			return nil, apperror.BadRequestWrap("Invalid cursor", domain.ErrInvalidCursor)
		}
		return nil, err
	}

	hasMore := len(rows) > size
	if hasMore {
		rows = rows[:size]
	}

	// The feed is user-agnostic; the favorite join happens in the caller's session.
	page := &domain.FeedPage{Items: domain.MarkFavorites(rows, nil), HasMore: hasMore}
	if hasMore {
		page.NextCursor = cursor.Encode(cursor.Token{
			Mode: string(filter.Mode),
			Term: filter.Term,
			ID:   rows[len(rows)-1].ID,
		})
	}
	return page, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
