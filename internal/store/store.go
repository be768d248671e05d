// Package store defines the records served by the API and the Store
// interface every backend implements.
//
// A Store owns three ordered collections: authors, games and reviews. Reviews
// reference authors and games by id, but those references are never checked
// and deleting a record never cascades to the records that point at it.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by operations that require an existing record.
// Plain lookups report a missing record as a nil result instead.
var ErrNotFound = errors.New("store: record not found")

// Author is a review author.
type Author struct {
	ID       string
	Name     string
	Verified bool
}

// Game is a reviewed game.
type Game struct {
	ID       string
	Title    string
	Platform []string
}

// Review is a rating of one game written by one author.
type Review struct {
	ID       string
	Rating   int32
	Content  string
	AuthorID string
	GameID   string
}

// AuthorInput holds the attributes of a new author.
type AuthorInput struct {
	Name     string
	Verified bool
}

// GameInput holds the attributes of a new game.
type GameInput struct {
	Title    string
	Platform []string
}

// ReviewInput holds the attributes of a new review. The author and game ids
// are passed separately to AddReview.
type ReviewInput struct {
	Rating  int32
	Content string
}

// GameEdits is a partial game update. Nil fields are left untouched.
type GameEdits struct {
	Title    *string
	Platform *[]string
}

// Apply returns g with every set field of e overlaid.
func (e GameEdits) Apply(g Game) Game {
	if e.Title != nil {
		g.Title = *e.Title
	}
	if e.Platform != nil {
		g.Platform = cloneStrings(*e.Platform)
	}
	return g
}

// Store is the data access layer used by the GraphQL resolvers.
type Store interface {
	Authors(ctx context.Context) ([]Author, error)
	Author(ctx context.Context, id string) (*Author, error)
	AddAuthor(ctx context.Context, in AuthorInput) (Author, error)
	DeleteAuthor(ctx context.Context, id string) ([]Author, error)

	Games(ctx context.Context) ([]Game, error)
	Game(ctx context.Context, id string) (*Game, error)
	AddGame(ctx context.Context, in GameInput) (Game, error)
	UpdateGame(ctx context.Context, id string, edits GameEdits) (Game, error)
	DeleteGame(ctx context.Context, id string) ([]Game, error)

	Reviews(ctx context.Context) ([]Review, error)
	Review(ctx context.Context, id string) (*Review, error)
	ReviewsByGame(ctx context.Context, gameID string) ([]Review, error)
	ReviewsByAuthor(ctx context.Context, authorID string) ([]Review, error)
	AddReview(ctx context.Context, in ReviewInput, authorID, gameID string) (Review, error)
	DeleteReview(ctx context.Context, id string) ([]Review, error)
}

// Clone returns a deep copy of g.
func (g Game) Clone() Game {
	g.Platform = cloneStrings(g.Platform)
	return g
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
