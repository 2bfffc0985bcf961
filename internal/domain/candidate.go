package domain

import (
	"context"
	"time"
)

// CandidateProfile is the card-sized view of a candidate used by the feed.
type CandidateProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Image       string    `json:"image"`
	Experience  string    `json:"experience"`
	Bio         string    `json:"bio"`
	Skills      []string  `json:"skills"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"created_at"`
	IsFavorited bool      `json:"is_favorited"`
}

// ProfileInfo is the headline block of a resume.
type ProfileInfo struct {
	Name       string `json:"name" firestore:"name" validate:"omitempty,max=100,valid_name,no_emoji"`
	Role       string `json:"role" firestore:"role" validate:"omitempty,max=100,valid_name,no_emoji"`
	Location   string `json:"location" firestore:"location" validate:"max=100"`
	Salary     string `json:"salary" firestore:"salary" validate:"max=50"`
	Image      string `json:"image" firestore:"image" validate:"omitempty,url"`
	Experience string `json:"experience" firestore:"experience" validate:"max=50"`
	Bio        string `json:"bio" firestore:"bio" validate:"max=1000"`
}

type Contact struct {
	Phones []string `json:"phones" firestore:"phones" validate:"max=5,dive,omitempty,valid_phone"`
	Emails []string `json:"emails" firestore:"emails" validate:"max=5,dive,omitempty,email"`
}

type Education struct {
	Degree      string `json:"degree" firestore:"degree" validate:"max=100"`
	Institution string `json:"institution" firestore:"institution" validate:"max=150"`
	Year        string `json:"year" firestore:"year" validate:"max=20"`
}

type WorkHistory struct {
	Company  string `json:"company" firestore:"company" validate:"max=150"`
	Position string `json:"position" firestore:"position" validate:"max=100"`
	Duration string `json:"duration" firestore:"duration" validate:"max=50"`
}

// Resume is the full candidate document. Only its owner writes it.
type Resume struct {
	ID           string        `json:"id"`
	Profile      ProfileInfo   `json:"profile"`
	Contact      Contact       `json:"contact"`
	Education    []Education   `json:"education" validate:"max=20,dive"`
	WorkHistory  []WorkHistory `json:"work_history" validate:"max=30,dive"`
	Achievements []string      `json:"achievements" validate:"max=30,dive,max=300"`
	Skills       []string      `json:"skills" validate:"max=50,dive,max=60"`
	Categories   []string      `json:"categories" validate:"max=10,dive,job_category"`
	VideoID      string        `json:"video_id" validate:"omitempty,video_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Summary projects the resume onto the feed card.
func (r *Resume) Summary() CandidateProfile {
	return CandidateProfile{
		ID:         r.ID,
		Name:       r.Profile.Name,
		Role:       r.Profile.Role,
		Location:   r.Profile.Location,
		Salary:     r.Profile.Salary,
		Image:      r.Profile.Image,
		Experience: r.Profile.Experience,
		Bio:        r.Profile.Bio,
		Skills:     nonNil(r.Skills),
		Categories: nonNil(r.Categories),
		CreatedAt:  r.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ProfileQuery is one store round trip for the feed. AfterID is the id of the last item of the
// previous page, empty for the first page. Limit counts rows, including any lookahead row.
type ProfileQuery struct {
	Filter  FeedFilter
	AfterID string
	Limit   int
}

type CandidateRepository interface {
	// Query returns profiles in the filter's order, strictly after AfterID.
	// Returns ErrInvalidCursor when AfterID names no profile.
	Query(ctx context.Context, q ProfileQuery) ([]CandidateProfile, error)
	// GetByID returns nil, nil when the profile does not exist.
	GetByID(ctx context.Context, id string) (*Resume, error)
	// GetSummaries returns the profiles that exist among ids, keyed by id.
	GetSummaries(ctx context.Context, ids []string) (map[string]CandidateProfile, error)
	// Upsert writes the resume. CreatedAt is assigned on first write and preserved afterwards.
	Upsert(ctx context.Context, resume *Resume) error
	// SetCategories returns ErrNotFound when the profile does not exist.
	SetCategories(ctx context.Context, id string, categories []string) error
}

type CandidateUsecase interface {
	GetCandidate(ctx context.Context, id string) (*Resume, error)
	GetOwnResume(ctx context.Context, userID string) (*Resume, error)
	SaveResume(ctx context.Context, resume *Resume) (*Resume, error)
	SetCategories(ctx context.Context, userID string, categories []string) error
}
