// Package resolver exposes a store.Store as a GraphQL API.
//
// Resolver is the root resolver for both the Query and Mutation types. Object
// resolvers wrap one record and look up related records lazily, so a review's
// author is only fetched when the field is selected.
package resolver

import (
	"context"

	"github.com/go-playground/validator/v10"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"

	"github.com/graph-gophers/gamereviews/internal/store"
)

// Resolver is the root resolver.
type Resolver struct {
	store    store.Store
	validate *validator.Validate
	log      logrus.FieldLogger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to report mutations.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// New returns a root resolver backed by s.
func New(s store.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:    s,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		r.log = l
	}
	return r
}

// NewSchema parses Schema with a root resolver backed by s.
func NewSchema(s store.Store, resolverOpts []Option, schemaOpts ...graphql.SchemaOpt) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, New(s, resolverOpts...), schemaOpts...)
}

func (r *Resolver) Games(ctx context.Context) ([]*gameResolver, error) {
	games, err := r.store.Games(ctx)
	if err != nil {
		return nil, wrapErr("games", err)
	}
	return r.games(games), nil
}

func (r *Resolver) Game(ctx context.Context, args idArgs) (*gameResolver, error) {
	g, err := r.store.Game(ctx, string(args.ID))
	if err != nil {
		return nil, wrapErr("game", err)
	}
	if g == nil {
		return nil, nil
	}
	return &gameResolver{root: r, g: *g}, nil
}

func (r *Resolver) Reviews(ctx context.Context) ([]*reviewResolver, error) {
	reviews, err := r.store.Reviews(ctx)
	if err != nil {
		return nil, wrapErr("reviews", err)
	}
	return r.reviews(reviews), nil
}

func (r *Resolver) Review(ctx context.Context, args idArgs) (*reviewResolver, error) {
	rv, err := r.store.Review(ctx, string(args.ID))
	if err != nil {
		return nil, wrapErr("review", err)
	}
	if rv == nil {
		return nil, nil
	}
	return &reviewResolver{root: r, r: *rv}, nil
}

func (r *Resolver) Authors(ctx context.Context) ([]*authorResolver, error) {
	authors, err := r.store.Authors(ctx)
	if err != nil {
		return nil, wrapErr("authors", err)
	}
	return r.authors(authors), nil
}

func (r *Resolver) Author(ctx context.Context, args idArgs) (*authorResolver, error) {
	a, err := r.store.Author(ctx, string(args.ID))
	if err != nil {
		return nil, wrapErr("author", err)
	}
	if a == nil {
		return nil, nil
	}
	return &authorResolver{root: r, a: *a}, nil
}

func (r *Resolver) AddGame(ctx context.Context, args addGameArgs) (*gameResolver, error) {
	if err := r.validate.Struct(args.Game); err != nil {
		return nil, wrapErr("addGame", err)
	}
	g, err := r.store.AddGame(ctx, args.Game.toStore())
	if err != nil {
		return nil, wrapErr("addGame", err)
	}
	r.log.WithField("game_id", g.ID).Info("game added")
	return &gameResolver{root: r, g: g}, nil
}

func (r *Resolver) UpdateGame(ctx context.Context, args updateGameArgs) (*gameResolver, error) {
	if err := r.validate.Struct(args.Edits); err != nil {
		return nil, wrapErr("updateGame", err)
	}
	g, err := r.store.UpdateGame(ctx, string(args.ID), args.Edits.toStore())
	if err != nil {
		return nil, wrapErr("updateGame", err)
	}
	r.log.WithField("game_id", g.ID).Info("game updated")
	return &gameResolver{root: r, g: g}, nil
}

func (r *Resolver) DeleteGame(ctx context.Context, args idArgs) ([]*gameResolver, error) {
	games, err := r.store.DeleteGame(ctx, string(args.ID))
	if err != nil {
		return nil, wrapErr("deleteGame", err)
	}
	r.log.WithField("game_id", args.ID).Info("game deleted")
	return r.games(games), nil
}

func (r *Resolver) DeleteAuthor(ctx context.Context, args idArgs) ([]*authorResolver, error) {
	authors, err := r.store.DeleteAuthor(ctx, string(args.ID))
	if err != nil {
		return nil, wrapErr("deleteAuthor", err)
	}
	r.log.WithField("author_id", args.ID).Info("author deleted")
	return r.authors(authors), nil
}

func (r *Resolver) AddReview(ctx context.Context, args addReviewArgs) (*reviewResolver, error) {
	if err := r.validate.Struct(args.Review); err != nil {
		return nil, wrapErr("addReview", err)
	}
	rv, err := r.store.AddReview(ctx, args.Review.toStore(), string(args.AuthorID), string(args.GameID))
	if err != nil {
		return nil, wrapErr("addReview", err)
	}
	r.log.WithFields(logrus.Fields{
		"review_id": rv.ID,
		"author_id": rv.AuthorID,
		"game_id":   rv.GameID,
	}).Info("review added")
	return &reviewResolver{root: r, r: rv}, nil
}

func (r *Resolver) DeleteReview(ctx context.Context, args idArgs) ([]*reviewResolver, error) {
	reviews, err := r.store.DeleteReview(ctx, string(args.ID))
	if err != nil {
		return nil, wrapErr("deleteReview", err)
	}
	r.log.WithField("review_id", args.ID).Info("review deleted")
	return r.reviews(reviews), nil
}

func (r *Resolver) games(gs []store.Game) []*gameResolver {
	out := make([]*gameResolver, len(gs))
	for i, g := range gs {
		out[i] = &gameResolver{root: r, g: g}
	}
	return out
}

func (r *Resolver) reviews(rs []store.Review) []*reviewResolver {
	out := make([]*reviewResolver, len(rs))
	for i, rv := range rs {
		out[i] = &reviewResolver{root: r, r: rv}
	}
	return out
}

func (r *Resolver) authors(as []store.Author) []*authorResolver {
	out := make([]*authorResolver, len(as))
	for i, a := range as {
		out[i] = &authorResolver{root: r, a: a}
	}
	return out
}
