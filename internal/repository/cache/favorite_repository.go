// Package cache decorates repositories with a Redis read-through cache. Redis errors never fail
// a request: reads fall through to the wrapped store and writes still reach it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-candidate-feed/internal/domain"
	"go-candidate-feed/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const favoritesKeyPrefix = "fav:"

type favoriteRepository struct {
	next   domain.FavoriteRepository
	client *goredis.Client
	ttl    time.Duration
}

// NewFavoriteRepository wraps next. A nil client returns next unchanged.
func NewFavoriteRepository(next domain.FavoriteRepository, client *goredis.Client, ttl time.Duration) domain.FavoriteRepository {
	if client == nil {
		return next
	}
	return &favoriteRepository{next: next, client: client, ttl: ttl}
}

func favoritesKey(userID string) string {
	return favoritesKeyPrefix + userID
}

func (r *favoriteRepository) Get(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	raw, err := r.client.Get(ctx, favoritesKey(userID)).Bytes()
	switch {
	case err == nil:
		var ids []string
		if jsonErr := json.Unmarshal(raw, &ids); jsonErr == nil {
			list := domain.EmptyFavorites(userID)
			for _, id := range ids {
				list.Favorites = append(list.Favorites, domain.FavoriteReference{UID: id})
			}
			return list, nil
		}
		logger.Log.Warn("discarding corrupt favorites cache entry", "user_id", userID)
	case !errors.Is(err, goredis.Nil):
		logger.Log.Warn("favorites cache read failed", "user_id", userID, "error", err)
	}

	list, err := r.next.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(list.IDs()); err == nil {
		if err := r.client.Set(ctx, favoritesKey(userID), payload, r.ttl).Err(); err != nil {
			logger.Log.Warn("favorites cache write failed", "user_id", userID, "error", err)
		}
	}
	return list, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userID, candidateID string) error {
	if err := r.next.Add(ctx, userID, candidateID); err != nil {
		return err
	}
	r.evict(ctx, userID)
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, candidateID string) error {
	if err := r.next.Remove(ctx, userID, candidateID); err != nil {
		return err
	}
	r.evict(ctx, userID)
	return nil
}

func (r *favoriteRepository) evict(ctx context.Context, userID string) {
	if err := r.client.Del(ctx, favoritesKey(userID)).Err(); err != nil {
		logger.Log.Warn("favorites cache eviction failed", "user_id", userID, "error", err)
	}
}
