package firestore

import (
	"context"

	"go-candidate-feed/internal/domain"

	"cloud.google.com/go/firestore"
)

// favoriteRepository keeps one favorites/{uid} document per user holding an array of
// {uid} references. Array union and remove are applied server side.
type favoriteRepository struct {
	client *firestore.Client
}

func NewFavoriteRepository(client *firestore.Client) domain.FavoriteRepository {
	return &favoriteRepository{client: client}
}

func (r *favoriteRepository) Get(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	snap, err := r.client.Collection(favoritesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return domain.EmptyFavorites(userID), nil
		}
		return nil, wrap("get favorites", err)
	}

	var doc favoritesDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, wrap("decode favorites", err)
	}

	list := domain.EmptyFavorites(userID)
	seen := make(map[string]struct{}, len(doc.Favorites))
	for _, f := range doc.Favorites {
		if _, dup := seen[f.UID]; dup || f.UID == "" {
			continue
		}
		seen[f.UID] = struct{}{}
		list.Favorites = append(list.Favorites, f)
	}
	return list, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userID, candidateID string) error {
	_, err := r.client.Collection(favoritesCollection).Doc(userID).Set(ctx, map[string]interface{}{
		fieldFavorites: firestore.ArrayUnion(reference(candidateID)),
	}, firestore.MergeAll)
	if err != nil {
		return wrap("add favorite", err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, candidateID string) error {
	_, err := r.client.Collection(favoritesCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: fieldFavorites, Value: firestore.ArrayRemove(reference(candidateID))},
	})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return wrap("remove favorite", err)
	}
	return nil
}

func reference(candidateID string) map[string]interface{} {
	return map[string]interface{}{"uid": candidateID}
}
