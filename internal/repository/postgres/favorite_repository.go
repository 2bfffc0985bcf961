package postgres

import (
	"context"

	"go-candidate-feed/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// favoriteRepository stores one row per (user, candidate). The primary key makes the union
// and removal idempotent without read-modify-write.
type favoriteRepository struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) domain.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Get(ctx context.Context, userID string) (*domain.FavoritesList, error) {
	rows, err := r.db.Query(ctx,
		`SELECT candidate_id FROM favorites WHERE user_id = $1 ORDER BY created_at, candidate_id`, userID)
	if err != nil {
		return nil, wrap("get favorites", err)
	}
	defer rows.Close()

	list := domain.EmptyFavorites(userID)
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, wrap("scan favorite", err)
		}
		list.Favorites = append(list.Favorites, domain.FavoriteReference{UID: uid})
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate favorites", err)
	}
	return list, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userID, candidateID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO favorites (user_id, candidate_id) VALUES ($1, $2) ON CONFLICT (user_id, candidate_id) DO NOTHING`,
		userID, candidateID)
	if err != nil {
		return wrap("add favorite", err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, candidateID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND candidate_id = $2`, userID, candidateID)
	if err != nil {
		return wrap("remove favorite", err)
	}
	return nil
}
