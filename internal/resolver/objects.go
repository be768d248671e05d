package resolver

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/graph-gophers/gamereviews/internal/store"
)

type gameResolver struct {
	root *Resolver
	g    store.Game
}

func (r *gameResolver) ID() graphql.ID {
	return graphql.ID(r.g.ID)
}

func (r *gameResolver) Title() string {
	return r.g.Title
}

func (r *gameResolver) Platform() []string {
	if r.g.Platform == nil {
		return []string{}
	}
	return r.g.Platform
}

func (r *gameResolver) Reviews(ctx context.Context) ([]*reviewResolver, error) {
	reviews, err := r.root.store.ReviewsByGame(ctx, r.g.ID)
	if err != nil {
		return nil, wrapErr("Game.reviews", err)
	}
	return r.root.reviews(reviews), nil
}

type authorResolver struct {
	root *Resolver
	a    store.Author
}

func (r *authorResolver) ID() graphql.ID {
	return graphql.ID(r.a.ID)
}

func (r *authorResolver) Name() string {
	return r.a.Name
}

func (r *authorResolver) Verified() bool {
	return r.a.Verified
}

func (r *authorResolver) Reviews(ctx context.Context) ([]*reviewResolver, error) {
	reviews, err := r.root.store.ReviewsByAuthor(ctx, r.a.ID)
	if err != nil {
		return nil, wrapErr("Author.reviews", err)
	}
	return r.root.reviews(reviews), nil
}

type reviewResolver struct {
	root *Resolver
	r    store.Review
}

func (r *reviewResolver) ID() graphql.ID {
	return graphql.ID(r.r.ID)
}

func (r *reviewResolver) Rating() int32 {
	return r.r.Rating
}

func (r *reviewResolver) Content() string {
	return r.r.Content
}

// Author resolves the review's author, or null for a dangling author id.
func (r *reviewResolver) Author(ctx context.Context) (*authorResolver, error) {
	if r.r.AuthorID == "" {
		return nil, nil
	}
	return r.root.Author(ctx, idArgs{ID: graphql.ID(r.r.AuthorID)})
}

// Game resolves the reviewed game, or null for a dangling game id.
func (r *reviewResolver) Game(ctx context.Context) (*gameResolver, error) {
	if r.r.GameID == "" {
		return nil, nil
	}
	return r.root.Game(ctx, idArgs{ID: graphql.ID(r.r.GameID)})
}
