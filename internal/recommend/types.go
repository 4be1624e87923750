// Package recommend implements the cross-media recommendation core: four
// strategies that bridge movie and book catalog vocabularies through the
// genre bridge table and normalize both catalogs' records into one shape.
package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/reelread/reelread-server/internal/catalog/bigbook"
	"github.com/reelread/reelread-server/internal/catalog/tmdb"
)

// ErrNotFound is returned by Detail when the item cannot be resolved.
var ErrNotFound = errors.New("recommend: item not found")

// Media kinds accepted in requests.
const (
	KindMovie = "movie"
	KindBook  = "book"
)

// Display labels used on output records.
const (
	LabelMovie = "Movie"
	LabelBook  = "Book"
)

// NormalizeKind lowercases and trims a caller-supplied kind string.
func NormalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

// Request describes one recommendation query.
type Request struct {
	SourceKind string
	TargetKind string
	Query      string
	Genre      string
	Limit      int
}

// Recommendation is the uniform output record produced regardless of source
// catalog. Every field is always populated; missing source data degrades to
// a fallback value, never to an absent key.
type Recommendation struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Year  string `json:"year"`
	Image string `json:"image"`
	Kind  string `json:"kind"`
}

// Detail is the full detail view for one item.
type Detail struct {
	Title       string   `json:"title"`
	Year        string   `json:"year"`
	Rating      string   `json:"rating"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Tags        []string `json:"tags"`
}

// Featured is one entry of the popular-movies home feed.
type Featured struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Year   string  `json:"year"`
	Rating float64 `json:"rating"`
	Poster string  `json:"poster"`
	Kind   string  `json:"kind"`
}

// MovieCatalog is the movie catalog surface the recommender depends on.
type MovieCatalog interface {
	SearchMovies(ctx context.Context, query string) ([]tmdb.Movie, error)
	MovieDetails(ctx context.Context, id int) (*tmdb.MovieDetails, error)
	Recommendations(ctx context.Context, id int) ([]tmdb.Movie, error)
	Discover(ctx context.Context, genreID int, sort string) ([]tmdb.Movie, error)
	Popular(ctx context.Context) ([]tmdb.Movie, error)
}

// BookCatalog is the book catalog surface the recommender depends on.
type BookCatalog interface {
	SearchBooks(ctx context.Context, p bigbook.SearchParams) ([][]bigbook.Book, error)
	SimilarBooks(ctx context.Context, id, number int) ([]bigbook.Book, error)
	BookInformation(ctx context.Context, id int) (*bigbook.Book, error)
}

// GenreBridge is the bridge table surface the recommender depends on.
// Lookups report a missing mapping with bridge.ErrNotFound.
type GenreBridge interface {
	MovieGenreID(ctx context.Context, bookGenreName string) (int, error)
	BookGenreName(ctx context.Context, movieGenreID int) (string, error)
}
