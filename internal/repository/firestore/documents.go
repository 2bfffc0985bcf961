package firestore

import (
	"time"

	"go-candidate-feed/internal/domain"
)

const (
	resumesCollection   = "resumes"
	favoritesCollection = "favorites"

	fieldCreatedAt  = "createdAt"
	fieldUpdatedAt  = "updatedAt"
	fieldRole       = "profile.role"
	fieldCategories = "categories"
	fieldFavorites  = "favorites"
)

// resumeDoc is the stored shape of resumes/{uid}.
type resumeDoc struct {
	Profile      domain.ProfileInfo   `firestore:"profile"`
	Contact      domain.Contact       `firestore:"contact"`
	Education    []domain.Education   `firestore:"education"`
	WorkHistory  []domain.WorkHistory `firestore:"workHistory"`
	Achievements []string             `firestore:"achievements"`
	Skills       []string             `firestore:"skills"`
	Categories   []string             `firestore:"categories"`
	VideoID      string               `firestore:"videoId"`
	CreatedAt    time.Time            `firestore:"createdAt"`
	UpdatedAt    time.Time            `firestore:"updatedAt"`
}

// favoritesDoc is the stored shape of favorites/{uid}.
type favoritesDoc struct {
	Favorites []domain.FavoriteReference `firestore:"favorites"`
}

func toResumeDoc(r *domain.Resume) resumeDoc {
	return resumeDoc{
		Profile:      r.Profile,
		Contact:      r.Contact,
		Education:    r.Education,
		WorkHistory:  r.WorkHistory,
		Achievements: r.Achievements,
		Skills:       r.Skills,
		Categories:   r.Categories,
		VideoID:      r.VideoID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (d resumeDoc) toResume(id string) *domain.Resume {
	return &domain.Resume{
		ID:           id,
		Profile:      d.Profile,
		Contact:      d.Contact,
		Education:    d.Education,
		WorkHistory:  d.WorkHistory,
		Achievements: d.Achievements,
		Skills:       d.Skills,
		Categories:   d.Categories,
		VideoID:      d.VideoID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
