// Package feed is the client side of the candidate feed: it accumulates pages into one list,
// keeps the signed-in user's favorites in sync with optimistic toggles, and joins the two for
// display. It talks to the server through PageSource and FavoritesStore, which pkg/feedclient
// implements over HTTP and the usecases implement in process.
package feed

import (
	"context"

	"go-candidate-feed/internal/domain"
)

type PageSource interface {
	FetchPage(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error)
}

type FavoritesStore interface {
	GetFavorites(ctx context.Context, userID string) (*domain.FavoritesList, error)
	AddFavorite(ctx context.Context, userID, candidateID string) error
	RemoveFavorite(ctx context.Context, userID, candidateID string) error
}

// User-facing notices.
const (
	MsgSignInRequired = "Need to sign in first"
	MsgSignInForMore  = "Sign in to see more"
	MsgSaveFailed     = "Error saving favorite. Please try again."
	MsgRemoveFailed   = "Error removing favorite. Please try again."
)

type NoticeKind int

const (
	NoticeSignIn NoticeKind = iota
	NoticeSaveFailed
	NoticeRemoveFailed
)

type Notice struct {
	Kind        NoticeKind
	CandidateID string
	Message     string
}
