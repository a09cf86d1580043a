package service

// rankingQuery asks for the first $perPage posts ordered by the service's own ranking.
const rankingQuery = `
query TodayPosts($perPage: Int!) {
  posts(order: RANKING, postedAfter: null, postedBefore: null, first: $perPage) {
    edges {
      node {
        name
        tagline
        url
        votesCount
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// Pointer fields let decoding tell a missing field from a zero value.
type postNode struct {
	Name       *string `json:"name"`
	Tagline    *string `json:"tagline"`
	URL        *string `json:"url"`
	VotesCount *int    `json:"votesCount"`
}

type postsResponse struct {
	Data *struct {
		Posts *struct {
			Edges []struct {
				Node *postNode `json:"node"`
			} `json:"edges"`
		} `json:"posts"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
