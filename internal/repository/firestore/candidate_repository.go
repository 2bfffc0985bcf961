package firestore

import (
	"context"
	"time"

	"go-candidate-feed/internal/domain"

	"cloud.google.com/go/firestore"
)

const rolePrefixCeiling = "\uf8ff"

type candidateRepository struct {
	client *firestore.Client
	now    func() time.Time
}

func NewCandidateRepository(client *firestore.Client) domain.CandidateRepository {
	return &candidateRepository{client: client, now: time.Now}
}

func (r *candidateRepository) Query(ctx context.Context, q domain.ProfileQuery) ([]domain.CandidateProfile, error) {
	col := r.client.Collection(resumesCollection)
	filter := q.Filter.Normalize()

	var query firestore.Query
	switch filter.Mode {
	case domain.FilterSearch:
		query = col.Where(fieldRole, ">=", filter.Term).
			Where(fieldRole, "<", filter.Term+rolePrefixCeiling).
			OrderBy(fieldRole, firestore.Asc).
			OrderBy(firestore.DocumentID, firestore.Asc)
	case domain.FilterCategory:
		query = col.Where(fieldCategories, "array-contains", filter.Term).
			OrderBy(fieldCreatedAt, firestore.Desc).
			OrderBy(firestore.DocumentID, firestore.Desc)
	default:
		query = col.OrderBy(fieldCreatedAt, firestore.Desc).
			OrderBy(firestore.DocumentID, firestore.Desc)
	}

	if q.AfterID != "" {
		anchor, err := col.Doc(q.AfterID).Get(ctx)
		if err != nil {
			if isNotFound(err) {
				return nil, domain.ErrInvalidCursor
			}
			return nil, wrap("resolve cursor", err)
		}
		query = query.StartAfter(anchor)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, wrap("query profiles", err)
	}

	profiles := make([]domain.CandidateProfile, 0, len(snaps))
	for _, snap := range snaps {
		var doc resumeDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, wrap("decode profile", err)
		}
		profiles = append(profiles, doc.toResume(snap.Ref.ID).Summary())
	}
	return profiles, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	snap, err := r.client.Collection(resumesCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrap("get resume", err)
	}

	var doc resumeDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, wrap("decode resume", err)
	}
	return doc.toResume(snap.Ref.ID), nil
}

func (r *candidateRepository) GetSummaries(ctx context.Context, ids []string) (map[string]domain.CandidateProfile, error) {
	out := make(map[string]domain.CandidateProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	col := r.client.Collection(resumesCollection)
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = col.Doc(id)
	}

	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, wrap("get profiles", err)
	}
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var doc resumeDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, wrap("decode profile", err)
		}
		out[snap.Ref.ID] = doc.toResume(snap.Ref.ID).Summary()
	}
	return out, nil
}

func (r *candidateRepository) Upsert(ctx context.Context, res *domain.Resume) error {
	ref := r.client.Collection(resumesCollection).Doc(res.ID)
	now := r.now().UTC()

	var createdAt time.Time
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		createdAt = now
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing resumeDoc
			if err := snap.DataTo(&existing); err != nil {
				return err
			}
			if !existing.CreatedAt.IsZero() {
				createdAt = existing.CreatedAt
			}
		case !isNotFound(err):
			return err
		}

		doc := toResumeDoc(res)
		doc.CreatedAt = createdAt
		doc.UpdatedAt = now
		return tx.Set(ref, doc)
	})
	if err != nil {
		return wrap("upsert resume", err)
	}

	res.CreatedAt = createdAt
	res.UpdatedAt = now
	return nil
}

func (r *candidateRepository) SetCategories(ctx context.Context, id string, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	_, err := r.client.Collection(resumesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: fieldCategories, Value: categories},
		{Path: fieldUpdatedAt, Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return wrap("update categories", err)
	}
	return nil
}
