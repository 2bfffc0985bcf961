package memory

import (
	"context"
	"sync"

	"go-candidate-feed/internal/domain"
)

type FavoriteRepository struct {
	mu    sync.RWMutex
	lists map[string][]string
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{lists: make(map[string][]string)}
}

func (r *FavoriteRepository) Get(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := domain.EmptyFavorites(userID)
	for _, id := range r.lists[userID] {
		list.Favorites = append(list.Favorites, domain.FavoriteReference{UID: id})
	}
	return list, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, candidateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.lists[userID] {
		if id == candidateID {
			return nil
		}
	}
	r.lists[userID] = append(r.lists[userID], candidateID)
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, candidateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.lists[userID]
	for i, id := range ids {
		if id == candidateID {
			r.lists[userID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}
