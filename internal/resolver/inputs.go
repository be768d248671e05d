package resolver

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/graph-gophers/gamereviews/internal/store"
)

// Argument structs are filled by graphql-go from the operation arguments and
// checked by validate before the store is called. The json tags only name the
// fields in validation messages.

type idArgs struct {
	ID graphql.ID
}

type addGameInput struct {
	Title    string   `json:"title" validate:"notblank"`
	Platform []string `json:"platform" validate:"min=1,dive,notblank"`
}

type addGameArgs struct {
	Game addGameInput
}

type editGameInput struct {
	Title    *string   `json:"title" validate:"omitempty,notblank"`
	Platform *[]string `json:"platform" validate:"omitempty,min=1,dive,notblank"`
}

type updateGameArgs struct {
	ID    graphql.ID
	Edits editGameInput
}

type addReviewInput struct {
	Rating  int32  `json:"rating" validate:"min=0,max=10"`
	Content string `json:"content" validate:"notblank"`
}

type addReviewArgs struct {
	Review   addReviewInput
	AuthorID graphql.ID
	GameID   graphql.ID
}

func (in addGameInput) toStore() store.GameInput {
	return store.GameInput{Title: in.Title, Platform: in.Platform}
}

func (in editGameInput) toStore() store.GameEdits {
	return store.GameEdits{Title: in.Title, Platform: in.Platform}
}

func (in addReviewInput) toStore() store.ReviewInput {
	return store.ReviewInput{Rating: in.Rating, Content: in.Content}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// notblank rejects strings made only of whitespace.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}
