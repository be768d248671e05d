// Package memory implements store.Store over in-process slices.
//
// Each collection has its own read/write lock, so a Store may be shared by
// concurrently executing resolvers. Nothing is persisted.
package memory

import (
	"context"
	"fmt"

	"github.com/graph-gophers/gamereviews/internal/store"
)

// Store keeps authors, games and reviews in memory, in insertion order.
type Store struct {
	authors *collection[store.Author]
	games   *collection[store.Game]
	reviews *collection[store.Review]
	newID   store.IDGenerator
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the generator used for inserted records.
func WithIDGenerator(gen store.IDGenerator) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithSeed loads the given data set into the new store.
func WithSeed(ds store.Dataset) Option {
	return func(s *Store) {
		for _, a := range ds.Authors {
			s.authors.insert(a)
		}
		for _, g := range ds.Games {
			s.games.insert(g)
		}
		for _, r := range ds.Reviews {
			s.reviews.insert(r)
		}
	}
}

// New returns an empty Store using KSUID ids unless options say otherwise.
func New(opts ...Option) *Store {
	s := &Store{
		authors: newCollection(func(a store.Author) string { return a.ID }, nil),
		games:   newCollection(func(g store.Game) string { return g.ID }, store.Game.Clone),
		reviews: newCollection(func(r store.Review) string { return r.ID }, nil),
		newID:   store.NewKSUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len reports the number of authors, games and reviews held.
func (s *Store) Len() (authors, games, reviews int) {
	return s.authors.size(), s.games.size(), s.reviews.size()
}

func (s *Store) Authors(ctx context.Context) ([]store.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.authors.all(), nil
}

func (s *Store) Author(ctx context.Context, id string) (*store.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.authors.get(id)
	return found(v, ok)
}

func (s *Store) AddAuthor(ctx context.Context, in store.AuthorInput) (store.Author, error) {
	if err := ctx.Err(); err != nil {
		return store.Author{}, err
	}
	return s.authors.insert(store.Author{
		ID:       s.newID(),
		Name:     in.Name,
		Verified: in.Verified,
	}), nil
}

// DeleteAuthor removes every author with the given id. Reviews written by the
// author are kept.
func (s *Store) DeleteAuthor(ctx context.Context, id string) ([]store.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.authors.deleteWhere(func(a store.Author) bool { return a.ID == id }), nil
}

func (s *Store) Games(ctx context.Context) ([]store.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.games.all(), nil
}

func (s *Store) Game(ctx context.Context, id string) (*store.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.games.get(id)
	return found(v, ok)
}

func (s *Store) AddGame(ctx context.Context, in store.GameInput) (store.Game, error) {
	if err := ctx.Err(); err != nil {
		return store.Game{}, err
	}
	return s.games.insert(store.Game{
		ID:       s.newID(),
		Title:    in.Title,
		Platform: in.Platform,
	}), nil
}

func (s *Store) UpdateGame(ctx context.Context, id string, edits store.GameEdits) (store.Game, error) {
	if err := ctx.Err(); err != nil {
		return store.Game{}, err
	}
	g, ok := s.games.update(id, edits.Apply)
	if !ok {
		return store.Game{}, fmt.Errorf("update game %q: %w", id, store.ErrNotFound)
	}
	return g, nil
}

func (s *Store) DeleteGame(ctx context.Context, id string) ([]store.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.games.deleteWhere(func(g store.Game) bool { return g.ID == id }), nil
}

func (s *Store) Reviews(ctx context.Context) ([]store.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.reviews.all(), nil
}

func (s *Store) Review(ctx context.Context, id string) (*store.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.reviews.get(id)
	return found(v, ok)
}

func (s *Store) ReviewsByGame(ctx context.Context, gameID string) ([]store.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.reviews.filter(func(r store.Review) bool { return r.GameID == gameID }), nil
}

func (s *Store) ReviewsByAuthor(ctx context.Context, authorID string) ([]store.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.reviews.filter(func(r store.Review) bool { return r.AuthorID == authorID }), nil
}

// AddReview appends a review. The author and game ids are stored as given.
func (s *Store) AddReview(ctx context.Context, in store.ReviewInput, authorID, gameID string) (store.Review, error) {
	if err := ctx.Err(); err != nil {
		return store.Review{}, err
	}
	return s.reviews.insert(store.Review{
		ID:       s.newID(),
		Rating:   in.Rating,
		Content:  in.Content,
		AuthorID: authorID,
		GameID:   gameID,
	}), nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) ([]store.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.reviews.deleteWhere(func(r store.Review) bool { return r.ID == id }), nil
}

func found[T any](v T, ok bool) (*T, error) {
	if !ok {
		return nil, nil
	}
	return &v, nil
}
