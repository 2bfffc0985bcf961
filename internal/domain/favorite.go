package domain

import "context"

type FavoriteReference struct {
	UID string `json:"uid" firestore:"uid"`
}

// FavoritesList belongs to exactly one user. UIDs are unique within it.
type FavoritesList struct {
	UserID    string              `json:"user_id"`
	Favorites []FavoriteReference `json:"favorites"`
}

func EmptyFavorites(userID string) *FavoritesList {
	return &FavoritesList{UserID: userID, Favorites: []FavoriteReference{}}
}

func (l *FavoritesList) IDs() []string {
	ids := make([]string, 0, len(l.Favorites))
	for _, f := range l.Favorites {
		ids = append(ids, f.UID)
	}
	return ids
}

// Set builds the membership set used for the favorite join.
func (l *FavoritesList) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(l.Favorites))
	for _, f := range l.Favorites {
		set[f.UID] = struct{}{}
	}
	return set
}

func (l *FavoritesList) Contains(id string) bool {
	for _, f := range l.Favorites {
		if f.UID == id {
			return true
		}
	}
	return false
}

// MarkFavorites stamps IsFavorited on each profile by membership in set.
func MarkFavorites(profiles []CandidateProfile, set map[string]struct{}) []CandidateProfile {
	out := make([]CandidateProfile, len(profiles))
	for i, p := range profiles {
		_, p.IsFavorited = set[p.ID]
		out[i] = p
	}
	return out
}

type FavoriteRepository interface {
	// Get returns an empty list, not an error, when the user has no favorites yet.
	Get(ctx context.Context, userID string) (*FavoritesList, error)
	// Add is a no-op when the reference is already present.
	Add(ctx context.Context, userID, candidateID string) error
	// Remove is a no-op when the reference is absent.
	Remove(ctx context.Context, userID, candidateID string) error
}

type FavoriteUsecase interface {
	GetFavorites(ctx context.Context, userID string) (*FavoritesList, error)
	AddFavorite(ctx context.Context, userID, candidateID string) error
	RemoveFavorite(ctx context.Context, userID, candidateID string) error
	GetFavoriteProfiles(ctx context.Context, userID string) ([]CandidateProfile, error)
}
