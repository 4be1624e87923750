// Package tmdb provides a client for The Movie Database v3 REST API.
package tmdb

// Movie is a single movie as returned by search, recommendation, discover,
// and popular listings.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
}

// Genre is a movie genre with its catalog identifier.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the full detail record for one movie.
type MovieDetails struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	Genres      []Genre `json:"genres"`
	VoteAverage float64 `json:"vote_average"`
}

// listResponse is the raw paginated list envelope shared by search,
// recommendations, discover, and popular.
type listResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// genreListResponse is the raw genre list envelope.
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}
