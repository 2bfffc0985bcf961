package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/apperror"
	"go-candidate-feed/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const (
	profileBatchSize   = 10
	profileConcurrency = 4
)

type favoriteUsecase struct {
	favorites  domain.FavoriteRepository
	candidates domain.CandidateRepository
	timeout    time.Duration
}

func NewFavoriteUsecase(favorites domain.FavoriteRepository, candidates domain.CandidateRepository, timeout time.Duration) domain.FavoriteUsecase {
	return &favoriteUsecase{favorites: favorites, candidates: candidates, timeout: timeout}
}

// authorizeUser rejects anonymous callers and callers acting on another user's list.
func authorizeUser(ctx context.Context, userID string) error {
	ctxUserID := domain.UserIDFrom(ctx)
	if userID == "" || ctxUserID == "" {
		return apperror.New(http.StatusUnauthorized, "Need to sign in first", domain.ErrNotSignedIn)
	}
	if ctxUserID != userID {
		return apperror.Forbidden("You can only access your own favorites")
	}
	return nil
}

func (u *favoriteUsecase) GetFavorites(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	if err := authorizeUser(ctx, userID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	list, err := u.favorites.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return domain.EmptyFavorites(userID), nil
	}
	return list, nil
}

func (u *favoriteUsecase) AddFavorite(ctx context.Context, userID, candidateID string) error {
	if err := u.checkMutation(ctx, userID, candidateID); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	if err := u.favorites.Add(ctx, userID, candidateID); err != nil {
		return err
	}
	logger.Log.Debug("favorite added", "user_id", userID, "candidate_id", candidateID)
	return nil
}

func (u *favoriteUsecase) RemoveFavorite(ctx context.Context, userID, candidateID string) error {
	if err := u.checkMutation(ctx, userID, candidateID); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	if err := u.favorites.Remove(ctx, userID, candidateID); err != nil {
		return err
	}
	logger.Log.Debug("favorite removed", "user_id", userID, "candidate_id", candidateID)
	return nil
}

func (u *favoriteUsecase) checkMutation(ctx context.Context, userID, candidateID string) error {
	if err := authorizeUser(ctx, userID); err != nil {
		return err
	}
	if strings.TrimSpace(candidateID) == "" {
		return apperror.BadRequest("Candidate ID is required")
	}
	return nil
}

// GetFavoriteProfiles resolves the user's favorites into profiles, in favorites order.
// References to profiles that no longer exist are dropped.
func (u *favoriteUsecase) GetFavoriteProfiles(ctx context.Context, userID string) ([]domain.CandidateProfile, error) {
	list, err := u.GetFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := list.IDs()
	if len(ids) == 0 {
		return []domain.CandidateProfile{}, nil
	}

	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	batches := chunk(ids, profileBatchSize)
	results := make([]map[string]domain.CandidateProfile, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(profileConcurrency)
	for i, batch := range batches {
		g.Go(func() error {
			found, err := u.candidates.GetSummaries(gctx, batch)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make([]domain.CandidateProfile, 0, len(ids))
	for i, batch := range batches {
		for _, id := range batch {
			p, ok := results[i][id]
			if !ok {
				continue
			}
			p.IsFavorited = true
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
