// Package memory is an in-process store with the same ordering and cursor semantics as the
// postgres and firestore stores. It backs STORE_BACKEND=memory and the tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-candidate-feed/internal/domain"
)

// rolePrefixCeiling closes the role search range [term, term+ceiling) as the other stores do.
const rolePrefixCeiling = "\uf8ff"

type CandidateRepository struct {
	mu      sync.RWMutex
	resumes map[string]*domain.Resume
	now     func() time.Time
}

// NewCandidateRepository returns an empty store. now may be nil.
func NewCandidateRepository(now func() time.Time) *CandidateRepository {
	if now == nil {
		now = time.Now
	}
	return &CandidateRepository{resumes: make(map[string]*domain.Resume), now: now}
}

// Seed stores resumes as-is, keeping their CreatedAt.
func (r *CandidateRepository) Seed(resumes ...domain.Resume) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range resumes {
		res := cloneResume(&resumes[i])
		r.resumes[res.ID] = res
	}
}

func (r *CandidateRepository) Query(ctx context.Context, q domain.ProfileQuery) ([]domain.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := q.Filter.Normalize()
	before := orderFor(filter.Mode)

	var anchor *domain.CandidateProfile
	if q.AfterID != "" {
		res, ok := r.resumes[q.AfterID]
		if !ok {
			return nil, domain.ErrInvalidCursor
		}
		s := res.Summary()
		anchor = &s
	}

	matches := make([]domain.CandidateProfile, 0)
	for _, res := range r.resumes {
		p := res.Summary()
		if !matchesFilter(p, filter) {
			continue
		}
		if anchor != nil && !before(*anchor, p) {
			continue
		}
		matches = append(matches, p)
	}

	sort.Slice(matches, func(i, j int) bool { return before(matches[i], matches[j]) })

	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resumes[id]
	if !ok {
		return nil, nil
	}
	return cloneResume(res), nil
}

func (r *CandidateRepository) GetSummaries(ctx context.Context, ids []string) (map[string]domain.CandidateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.CandidateProfile, len(ids))
	for _, id := range ids {
		if res, ok := r.resumes[id]; ok {
			out[id] = res.Summary()
		}
	}
	return out, nil
}

func (r *CandidateRepository) Upsert(ctx context.Context, resume *domain.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := cloneResume(resume)
	if existing, ok := r.resumes[resume.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.resumes[stored.ID] = stored

	resume.CreatedAt = stored.CreatedAt
	resume.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *CandidateRepository) SetCategories(ctx context.Context, id string, categories []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok {
		return domain.ErrNotFound
	}
	res.Categories = append([]string(nil), categories...)
	res.UpdatedAt = r.now()
	return nil
}

func matchesFilter(p domain.CandidateProfile, f domain.FeedFilter) bool {
	switch f.Mode {
	case domain.FilterSearch:
		return p.Role >= f.Term && p.Role < f.Term+rolePrefixCeiling
	case domain.FilterCategory:
		for _, c := range p.Categories {
			if c == f.Term {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// orderFor returns the strict "comes before" relation for a feed mode.
func orderFor(mode domain.FilterMode) func(a, b domain.CandidateProfile) bool {
	if mode == domain.FilterSearch {
		return func(a, b domain.CandidateProfile) bool {
			if a.Role != b.Role {
				return a.Role < b.Role
			}
			return a.ID < b.ID
		}
	}
	return func(a, b domain.CandidateProfile) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}
}

func cloneResume(r *domain.Resume) *domain.Resume {
	c := *r
	c.Contact.Phones = append([]string(nil), r.Contact.Phones...)
	c.Contact.Emails = append([]string(nil), r.Contact.Emails...)
	c.Education = append([]domain.Education(nil), r.Education...)
	c.WorkHistory = append([]domain.WorkHistory(nil), r.WorkHistory...)
	c.Achievements = append([]string(nil), r.Achievements...)
	c.Skills = append([]string(nil), r.Skills...)
	c.Categories = append([]string(nil), r.Categories...)
	return &c
}
