package metrics

import (
	"context"
	"time"

	"github.com/graph-gophers/gamereviews/internal/store"
)

// InstrumentStore wraps s so that every call is counted and timed.
func InstrumentStore(s store.Store, c *Collector) store.Store {
	return &instrumentedStore{next: s, c: c}
}

type instrumentedStore struct {
	next store.Store
	c    *Collector
}

func (s *instrumentedStore) Authors(ctx context.Context) (out []store.Author, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("authors", start, err) }(time.Now())
	return s.next.Authors(ctx)
}

func (s *instrumentedStore) Author(ctx context.Context, id string) (out *store.Author, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("author", start, err) }(time.Now())
	return s.next.Author(ctx, id)
}

func (s *instrumentedStore) AddAuthor(ctx context.Context, in store.AuthorInput) (out store.Author, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("add_author", start, err) }(time.Now())
	return s.next.AddAuthor(ctx, in)
}

func (s *instrumentedStore) DeleteAuthor(ctx context.Context, id string) (out []store.Author, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("delete_author", start, err) }(time.Now())
	return s.next.DeleteAuthor(ctx, id)
}

func (s *instrumentedStore) Games(ctx context.Context) (out []store.Game, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("games", start, err) }(time.Now())
	return s.next.Games(ctx)
}

func (s *instrumentedStore) Game(ctx context.Context, id string) (out *store.Game, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("game", start, err) }(time.Now())
	return s.next.Game(ctx, id)
}

func (s *instrumentedStore) AddGame(ctx context.Context, in store.GameInput) (out store.Game, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("add_game", start, err) }(time.Now())
	return s.next.AddGame(ctx, in)
}

func (s *instrumentedStore) UpdateGame(ctx context.Context, id string, edits store.GameEdits) (out store.Game, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("update_game", start, err) }(time.Now())
	return s.next.UpdateGame(ctx, id, edits)
}

func (s *instrumentedStore) DeleteGame(ctx context.Context, id string) (out []store.Game, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("delete_game", start, err) }(time.Now())
	return s.next.DeleteGame(ctx, id)
}

func (s *instrumentedStore) Reviews(ctx context.Context) (out []store.Review, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("reviews", start, err) }(time.Now())
	return s.next.Reviews(ctx)
}

func (s *instrumentedStore) Review(ctx context.Context, id string) (out *store.Review, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("review", start, err) }(time.Now())
	return s.next.Review(ctx, id)
}

func (s *instrumentedStore) ReviewsByGame(ctx context.Context, gameID string) (out []store.Review, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("reviews_by_game", start, err) }(time.Now())
	return s.next.ReviewsByGame(ctx, gameID)
}

func (s *instrumentedStore) ReviewsByAuthor(ctx context.Context, authorID string) (out []store.Review, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("reviews_by_author", start, err) }(time.Now())
	return s.next.ReviewsByAuthor(ctx, authorID)
}

func (s *instrumentedStore) AddReview(ctx context.Context, in store.ReviewInput, authorID, gameID string) (out store.Review, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("add_review", start, err) }(time.Now())
	return s.next.AddReview(ctx, in, authorID, gameID)
}

func (s *instrumentedStore) DeleteReview(ctx context.Context, id string) (out []store.Review, err error) {
	defer func(start time.Time) { s.c.observeStoreOp("delete_review", start, err) }(time.Now())
	return s.next.DeleteReview(ctx, id)
}
