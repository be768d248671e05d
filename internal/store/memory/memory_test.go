package memory_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graph-gophers/gamereviews/internal/store"
	"github.com/graph-gophers/gamereviews/internal/store/memory"
)

func newStore(opts ...memory.Option) *memory.Store {
	opts = append([]memory.Option{memory.WithIDGenerator(store.NewSequence("id"))}, opts...)
	return memory.New(opts...)
}

func TestListAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	games, err := s.Games(ctx)
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)

	titles := []string{"Chess", "Go", "Shogi"}
	for i, title := range titles {
		_, err := s.AddGame(ctx, store.GameInput{Title: title, Platform: []string{"Board"}})
		require.NoError(t, err)

		games, err := s.Games(ctx)
		require.NoError(t, err)
		require.Len(t, games, i+1)
	}

	games, err = s.Games(ctx)
	require.NoError(t, err)
	for i, g := range games {
		assert.Equal(t, titles[i], g.Title)
	}
}

func TestInsertThenGet(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	g, err := s.AddGame(ctx, store.GameInput{Title: "Chess", Platform: []string{"Board"}})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Chess", g.Title)

	got, err := s.Game(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, g, *got)

	a, err := s.AddAuthor(ctx, store.AuthorInput{Name: "luigi", Verified: true})
	require.NoError(t, err)
	gotAuthor, err := s.Author(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, gotAuthor)
	assert.Equal(t, a, *gotAuthor)

	r, err := s.AddReview(ctx, store.ReviewInput{Rating: 8, Content: "solid"}, a.ID, g.ID)
	require.NoError(t, err)
	gotReview, err := s.Review(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, gotReview)
	assert.Equal(t, store.Review{ID: r.ID, Rating: 8, Content: "solid", AuthorID: a.ID, GameID: g.ID}, *gotReview)
}

func TestGetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Sample))

	a, err := s.Author(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, a)

	g, err := s.Game(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, g)

	r, err := s.Review(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestGetFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Dataset{
		Authors: []store.Author{
			{ID: "dup", Name: "first"},
			{ID: "dup", Name: "second"},
		},
	}))

	a, err := s.Author(ctx, "dup")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "first", a.Name)
}

func TestReviewsByForeignKey(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	r1, err := s.AddReview(ctx, store.ReviewInput{Rating: 5, Content: "a"}, "A1", "G1")
	require.NoError(t, err)
	_, err = s.AddReview(ctx, store.ReviewInput{Rating: 6, Content: "b"}, "A2", "G2")
	require.NoError(t, err)
	r3, err := s.AddReview(ctx, store.ReviewInput{Rating: 7, Content: "c"}, "A2", "G1")
	require.NoError(t, err)

	byGame, err := s.ReviewsByGame(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, []store.Review{r1, r3}, byGame)

	again, err := s.ReviewsByGame(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, byGame, again)

	byAuthor, err := s.ReviewsByAuthor(ctx, "A2")
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	assert.Equal(t, "b", byAuthor[0].Content)
	assert.Equal(t, "c", byAuthor[1].Content)

	none, err := s.ReviewsByGame(ctx, "G404")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateGame(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Sample))

	title := "Zelda, Breath of the Wild"
	g, err := s.UpdateGame(ctx, "1", store.GameEdits{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, store.Game{ID: "1", Title: title, Platform: []string{"Switch"}}, g)

	platform := []string{"Switch", "Switch 2"}
	g, err = s.UpdateGame(ctx, "1", store.GameEdits{Platform: &platform})
	require.NoError(t, err)
	assert.Equal(t, title, g.Title)
	assert.Equal(t, platform, g.Platform)

	games, err := s.Games(ctx)
	require.NoError(t, err)
	assert.Equal(t, g, games[0], "updated record keeps its position")
}

func TestUpdateGameNotFound(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Sample))

	title := "ghost"
	_, err := s.UpdateGame(ctx, "missing", store.GameEdits{Title: &title})
	require.ErrorIs(t, err, store.ErrNotFound)

	games, err := s.Games(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Sample.Games, games)
}

func TestDeleteReturnsRemaining(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Sample))

	games, err := s.DeleteGame(ctx, "3")
	require.NoError(t, err)
	require.Len(t, games, len(store.Sample.Games)-1)
	for _, g := range games {
		assert.NotEqual(t, "3", g.ID)
	}
	assert.Equal(t, "4", games[2].ID, "survivors keep their order")

	games, err = s.DeleteGame(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, games, len(store.Sample.Games)-1)

	reviews, err := s.DeleteReview(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, reviews, len(store.Sample.Reviews)-1)
}

func TestDeleteRemovesDuplicates(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Dataset{
		Reviews: []store.Review{{ID: "x"}, {ID: "y"}, {ID: "x"}},
	}))

	reviews, err := s.DeleteReview(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []store.Review{{ID: "y"}}, reviews)
}

func TestDeleteAuthorLeavesOrphans(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Sample))

	authors, err := s.DeleteAuthor(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, authors, 2)

	reviews, err := s.ReviewsByAuthor(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	a, err := s.Author(ctx, reviews[0].AuthorID)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := newStore(memory.WithSeed(store.Sample))

	games, err := s.Games(ctx)
	require.NoError(t, err)
	games[0].Title = "mutated"
	games[0].Platform[0] = "mutated"

	g, err := s.Game(ctx, games[0].ID)
	require.NoError(t, err)
	assert.Equal(t, store.Sample.Games[0], *g)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newStore()

	_, err := s.Games(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.AddGame(ctx, store.GameInput{Title: "Chess"})
	assert.ErrorIs(t, err, context.Canceled)
	a, b, c := s.Len()
	assert.Zero(t, a+b+c)
}

func TestConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddGame(ctx, store.GameInput{Title: strconv.Itoa(i)})
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddReview(ctx, store.ReviewInput{Rating: int32(i % 10)}, "A1", "G1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	_, games, reviews := s.Len()
	assert.Equal(t, n, games)
	assert.Equal(t, n, reviews)

	all, err := s.Games(ctx)
	require.NoError(t, err)
	ids := make(map[string]bool, n)
	for _, g := range all {
		ids[g.ID] = true
	}
	assert.Len(t, ids, n, "generated ids are unique")
}
