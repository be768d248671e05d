package resolver

// Schema is the GraphQL schema served by the API.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}
	# The query type, represents all of the entry points into our object graph
	type Query {
		games: [Game!]!
		game(id: ID!): Game
		reviews: [Review!]!
		review(id: ID!): Review
		authors: [Author!]!
		author(id: ID!): Author
	}
	# The mutation type, represents all updates we can make to our data
	type Mutation {
		addGame(game: AddGameInput!): Game
		# Returns the games left after the deletion
		deleteGame(id: ID!): [Game!]!
		updateGame(id: ID!, edits: EditGameInput!): Game
		# The author and game are not required to exist
		addReview(review: AddReviewInput!, authorId: ID!, gameId: ID!): Review
		# Returns the reviews left after the deletion
		deleteReview(id: ID!): [Review!]!
		# Reviews written by the author are kept
		deleteAuthor(id: ID!): [Author!]!
	}
	type Game {
		id: ID!
		title: String!
		platform: [String!]!
		# Reviews of this game, or an empty list if it has none
		reviews: [Review!]!
	}
	type Review {
		id: ID!
		# 0-10
		rating: Int!
		content: String!
		# Null when the game no longer exists
		game: Game
		# Null when the author no longer exists
		author: Author
	}
	type Author {
		id: ID!
		name: String!
		verified: Boolean!
		# Reviews written by this author, or an empty list if there are none
		reviews: [Review!]!
	}
	# The input object sent when someone is adding a new game
	input AddGameInput {
		title: String!
		platform: [String!]!
	}
	# The input object sent when someone is editing a game, unset fields are kept
	input EditGameInput {
		title: String
		platform: [String!]
	}
	# The input object sent when someone is adding a new review
	input AddReviewInput {
		rating: Int!
		content: String!
	}
`
