package store

// Dataset is a set of records loaded into an empty store. Records keep the ids
// given here.
type Dataset struct {
	Authors []Author
	Games   []Game
	Reviews []Review
}

// Sample is the data set the server starts with.
var Sample = Dataset{
	Games: []Game{
		{ID: "1", Title: "Zelda, Tears of the Kingdom", Platform: []string{"Switch"}},
		{ID: "2", Title: "Final Fantasy 7 Remake", Platform: []string{"PS5", "Xbox"}},
		{ID: "3", Title: "Elden Ring", Platform: []string{"PS5", "Xbox", "PC"}},
		{ID: "4", Title: "Mario Kart", Platform: []string{"Switch"}},
		{ID: "5", Title: "Pokemon Scarlet", Platform: []string{"PS5", "Xbox", "PC"}},
	},
	Authors: []Author{
		{ID: "1", Name: "mario", Verified: true},
		{ID: "2", Name: "yoshi", Verified: false},
		{ID: "3", Name: "peach", Verified: true},
	},
	Reviews: []Review{
		{ID: "1", Rating: 9, Content: "lorem ipsum", AuthorID: "1", GameID: "2"},
		{ID: "2", Rating: 10, Content: "lorem ipsum", AuthorID: "2", GameID: "1"},
		{ID: "3", Rating: 7, Content: "lorem ipsum", AuthorID: "3", GameID: "3"},
		{ID: "4", Rating: 5, Content: "lorem ipsum", AuthorID: "2", GameID: "4"},
		{ID: "5", Rating: 8, Content: "lorem ipsum", AuthorID: "2", GameID: "5"},
		{ID: "6", Rating: 7, Content: "lorem ipsum", AuthorID: "1", GameID: "2"},
		{ID: "7", Rating: 10, Content: "lorem ipsum", AuthorID: "3", GameID: "1"},
	},
}
