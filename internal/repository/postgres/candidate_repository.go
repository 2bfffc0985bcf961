package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-candidate-feed/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// rolePrefixCeiling closes the half-open prefix range [term, term+ceiling).
const rolePrefixCeiling = "\uf8ff"

const summaryColumns = `id, name, role, location, salary, image, experience, bio, skills, categories, created_at`

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Query(ctx context.Context, q domain.ProfileQuery) ([]domain.CandidateProfile, error) {
	filter := q.Filter.Normalize()

	var (
		args  []any
		where []string
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	orderBy := `created_at DESC, id COLLATE "C" DESC`
	switch filter.Mode {
	case domain.FilterSearch:
		where = append(where,
			`role COLLATE "C" >= `+arg(filter.Term),
			`role COLLATE "C" < `+arg(filter.Term+rolePrefixCeiling),
		)
		orderBy = `role COLLATE "C" ASC, id COLLATE "C" ASC`
	case domain.FilterCategory:
		where = append(where, `categories @> `+arg(pq.Array([]string{filter.Term}))+`::text[]`)
	}

	if q.AfterID != "" {
		var anchorCreated time.Time
		var anchorRole string
		err := r.db.QueryRow(ctx,
			`SELECT created_at, role FROM candidate_profiles WHERE id = $1`, q.AfterID,
		).Scan(&anchorCreated, &anchorRole)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrInvalidCursor
			}
			return nil, wrap("resolve cursor", err)
		}

		if filter.Mode == domain.FilterSearch {
			role, id := arg(anchorRole), arg(q.AfterID)
			where = append(where, fmt.Sprintf(
				`(role COLLATE "C" > %s OR (role COLLATE "C" = %s AND id COLLATE "C" > %s))`, role, role, id))
		} else {
			created, id := arg(anchorCreated), arg(q.AfterID)
			where = append(where, fmt.Sprintf(
				`(created_at < %s OR (created_at = %s AND id COLLATE "C" < %s))`, created, created, id))
		}
	}

	query := `SELECT ` + summaryColumns + ` FROM candidate_profiles`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY ` + orderBy
	if q.Limit > 0 {
		query += ` LIMIT ` + arg(q.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("query profiles", err)
	}
	defer rows.Close()

	profiles := make([]domain.CandidateProfile, 0, q.Limit)
	for rows.Next() {
		p, err := scanSummary(rows)
		if err != nil {
			return nil, wrap("scan profile", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate profiles", err)
	}
	return profiles, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	query := `
		SELECT
			id, name, role, location, salary, image, experience, bio,
			skills, categories, achievements, contact, education, work_history,
			video_id, created_at, updated_at
		FROM candidate_profiles WHERE id = $1`

	var (
		res                               domain.Resume
		contact, education, workHistory []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.Profile.Name, &res.Profile.Role, &res.Profile.Location, &res.Profile.Salary,
		&res.Profile.Image, &res.Profile.Experience, &res.Profile.Bio,
		pq.Array(&res.Skills), pq.Array(&res.Categories), pq.Array(&res.Achievements),
		&contact, &education, &workHistory,
		&res.VideoID, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get resume", err)
	}

	if err := unmarshalColumn(contact, &res.Contact); err != nil {
		return nil, fmt.Errorf("failed to decode contact: %w", err)
	}
	if err := unmarshalColumn(education, &res.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	if err := unmarshalColumn(workHistory, &res.WorkHistory); err != nil {
		return nil, fmt.Errorf("failed to decode work history: %w", err)
	}
	return &res, nil
}

func (r *candidateRepository) GetSummaries(ctx context.Context, ids []string) (map[string]domain.CandidateProfile, error) {
	out := make(map[string]domain.CandidateProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+summaryColumns+` FROM candidate_profiles WHERE id = ANY($1::text[])`, pq.Array(ids))
	if err != nil {
		return nil, wrap("get profiles", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanSummary(rows)
		if err != nil {
			return nil, wrap("scan profile", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate profiles", err)
	}
	return out, nil
}

func (r *candidateRepository) Upsert(ctx context.Context, res *domain.Resume) error {
	contact, err := json.Marshal(res.Contact)
	if err != nil {
		return fmt.Errorf("failed to encode contact: %w", err)
	}
	education, err := json.Marshal(nonNilSlice(res.Education))
	if err != nil {
		return fmt.Errorf("failed to encode education: %w", err)
	}
	workHistory, err := json.Marshal(nonNilSlice(res.WorkHistory))
	if err != nil {
		return fmt.Errorf("failed to encode work history: %w", err)
	}

	// created_at is set once on insert and never updated.
	query := `
		INSERT INTO candidate_profiles (
			id, name, role, location, salary, image, experience, bio,
			skills, categories, achievements, contact, education, work_history, video_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13::jsonb, $14::jsonb, $15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			location = EXCLUDED.location,
			salary = EXCLUDED.salary,
			image = EXCLUDED.image,
			experience = EXCLUDED.experience,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			categories = EXCLUDED.categories,
			achievements = EXCLUDED.achievements,
			contact = EXCLUDED.contact,
			education = EXCLUDED.education,
			work_history = EXCLUDED.work_history,
			video_id = EXCLUDED.video_id,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		res.ID, res.Profile.Name, res.Profile.Role, res.Profile.Location, res.Profile.Salary,
		res.Profile.Image, res.Profile.Experience, res.Profile.Bio,
		pq.Array(nonNilSlice(res.Skills)), pq.Array(nonNilSlice(res.Categories)), pq.Array(nonNilSlice(res.Achievements)),
		string(contact), string(education), string(workHistory), res.VideoID,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return wrap("upsert resume", err)
	}
	return nil
}

func (r *candidateRepository) SetCategories(ctx context.Context, id string, categories []string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET categories = $1, updated_at = NOW() WHERE id = $2`,
		pq.Array(nonNilSlice(categories)), id,
	)
	if err != nil {
		return wrap("update categories", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSummary(row pgx.Row) (domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	err := row.Scan(
		&p.ID, &p.Name, &p.Role, &p.Location, &p.Salary, &p.Image, &p.Experience, &p.Bio,
		pq.Array(&p.Skills), pq.Array(&p.Categories), &p.CreatedAt,
	)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	return p, err
}

func unmarshalColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
