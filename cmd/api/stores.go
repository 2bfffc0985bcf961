package main

import (
	"context"
	"errors"
	"fmt"

	"go-candidate-feed/config"
	"go-candidate-feed/internal/domain"
	fsrepo "go-candidate-feed/internal/repository/firestore"
	"go-candidate-feed/internal/repository/memory"
	"go-candidate-feed/internal/repository/postgres"
	"go-candidate-feed/pkg/database"
	fsclient "go-candidate-feed/pkg/firestore"
	"go-candidate-feed/pkg/logger"

	"google.golang.org/api/iterator"
)

// storeSet is the backend selected by STORE_BACKEND.
type storeSet struct {
	Candidates domain.CandidateRepository
	Favorites  domain.FavoriteRepository
	Ping       func(ctx context.Context) error
	closers    []func()
}

func (s *storeSet) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*storeSet, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.DefaultPoolConfig())
		if err != nil {
			return nil, err
		}
		if cfg.DBAutoMigrate {
			if err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			logger.Log.Info("Database schema is up to date")
		}
		return &storeSet{
			Candidates: postgres.NewCandidateRepository(pool),
			Favorites:  postgres.NewFavoriteRepository(pool),
			Ping:       pool.Ping,
			closers:    []func(){pool.Close},
		}, nil

	case config.BackendFirestore:
		client, err := fsclient.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, err
		}
		return &storeSet{
			Candidates: fsrepo.NewCandidateRepository(client),
			Favorites:  fsrepo.NewFavoriteRepository(client),
			Ping: func(ctx context.Context) error {
				_, err := client.Collection("resumes").Limit(1).Documents(ctx).Next()
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			},
			closers: []func(){func() { _ = client.Close() }},
		}, nil

	case config.BackendMemory:
		logger.Log.Warn("Using the in-memory store: data is lost on restart")
		return &storeSet{
			Candidates: memory.NewCandidateRepository(nil),
			Favorites:  memory.NewFavoriteRepository(),
			Ping:       func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
