package recommend

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/reelread/reelread-server/internal/bridge"
	"github.com/reelread/reelread-server/internal/catalog/bigbook"
	"github.com/reelread/reelread-server/internal/catalog/tmdb"
	"github.com/reelread/reelread-server/internal/genre"
)

// featuredCount caps the popular-movies home feed.
const featuredCount = 4

// Recommender routes recommendation requests to one of four strategies and
// guarantees the "never crash the request" contract: every upstream failure
// is absorbed into an empty result at this boundary.
type Recommender struct {
	movies       MovieCatalog
	books        BookCatalog
	bridge       GenreBridge
	defaultLimit int
	logger       *slog.Logger
}

// New creates a Recommender. defaultLimit is applied when a request carries
// no positive limit.
func New(movies MovieCatalog, books BookCatalog, gb GenreBridge, defaultLimit int, logger *slog.Logger) *Recommender {
	if defaultLimit <= 0 {
		defaultLimit = 4
	}
	return &Recommender{
		movies:       movies,
		books:        books,
		bridge:       gb,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Recommend dispatches on (source, target) kind and returns a normalized,
// length-bounded list. Unsupported kind pairs yield an empty list, as do
// upstream failures; callers never observe an error.
func (r *Recommender) Recommend(ctx context.Context, req Request) []Recommendation {
	if req.Limit <= 0 {
		req.Limit = r.defaultLimit
	}

	source := NormalizeKind(req.SourceKind)
	target := NormalizeKind(req.TargetKind)

	var (
		results []Recommendation
		err     error
	)

	switch {
	case source == KindMovie && target == KindMovie:
		results, err = r.moviesFromMovie(ctx, req.Query, req.Limit)
	case source == KindBook && target == KindBook:
		results, err = r.booksFromBook(ctx, req.Query, req.Limit)
	case source == KindMovie && target == KindBook:
		results, err = r.booksFromMovie(ctx, req.Query, req.Limit)
	case source == KindBook && target == KindMovie:
		results, err = r.moviesFromGenre(ctx, req.Genre, req.Limit)
	default:
		// Unsupported combination: empty result, not an error.
		return []Recommendation{}
	}

	if err != nil {
		r.logger.Warn("recommendation strategy failed",
			"source", source,
			"target", target,
			"error", err,
		)
		return []Recommendation{}
	}
	if results == nil {
		results = []Recommendation{}
	}
	return results
}

// moviesFromMovie implements the same-medium movie similarity strategy:
// resolve the title to the first search match, then ask the catalog for its
// recommended movies.
func (r *Recommender) moviesFromMovie(ctx context.Context, title string, limit int) ([]Recommendation, error) {
	matches, err := r.movies.SearchMovies(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	recs, err := r.movies.Recommendations(ctx, matches[0].ID)
	if err != nil {
		return nil, err
	}

	results := make([]Recommendation, 0, limit)
	for _, m := range truncateMovies(recs, limit) {
		results = append(results, NormalizeMovie(m))
	}
	return results, nil
}

// booksFromBook implements the same-medium book similarity strategy. The
// similar-books listing omits publication years, so each item gets one
// follow-up detail call; a failed lookup leaves that item's year at "N/A"
// rather than dropping the item.
func (r *Recommender) booksFromBook(ctx context.Context, title string, limit int) ([]Recommendation, error) {
	groups, err := r.books.SearchBooks(ctx, bigbook.SearchParams{Query: title, Number: 1})
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 || len(groups[0]) == 0 {
		return nil, nil
	}

	similar, err := r.books.SimilarBooks(ctx, groups[0][0].ID, limit)
	if err != nil {
		return nil, err
	}
	if len(similar) > limit {
		similar = similar[:limit]
	}

	results := make([]Recommendation, 0, len(similar))
	for _, b := range similar {
		rec := NormalizeBook(b)
		if info, infoErr := r.books.BookInformation(ctx, b.ID); infoErr == nil {
			rec.Year = bookYear(info.PublishDate)
		}
		results = append(results, rec)
	}
	return results, nil
}

// booksFromMovie implements the movie-to-book cross-medium strategy: the
// matched movie's first genre is bridged to a book genre name, which drives
// a rating-sorted book search. Multi-genre movies are reduced to their first
// genre on purpose.
func (r *Recommender) booksFromMovie(ctx context.Context, title string, limit int) ([]Recommendation, error) {
	if title == "" {
		return nil, nil
	}

	matches, err := r.movies.SearchMovies(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	details, err := r.movies.MovieDetails(ctx, matches[0].ID)
	if err != nil {
		return nil, err
	}
	if len(details.Genres) == 0 {
		return nil, nil
	}

	bookGenre, err := r.bridge.BookGenreName(ctx, details.Genres[0].ID)
	if errors.Is(err, bridge.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	groups, err := r.books.SearchBooks(ctx, bigbook.SearchParams{
		Genres: bookGenre,
		Sort:   bigbook.SortRating,
		Number: limit,
	})
	if err != nil {
		return nil, err
	}

	// The genre search already carries rating and year, so no per-item
	// detail call is needed here.
	results := make([]Recommendation, 0, limit)
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		results = append(results, NormalizeBook(group[0]))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// moviesFromGenre implements the book-to-movie cross-medium strategy. The
// genre must be supplied explicitly; it is never derived from a title. An
// absent genre short-circuits without touching any external service.
func (r *Recommender) moviesFromGenre(ctx context.Context, rawGenre string, limit int) ([]Recommendation, error) {
	g := genre.Normalize(rawGenre)
	if g == "" {
		return nil, nil
	}

	genreID, err := r.bridge.MovieGenreID(ctx, g)
	if errors.Is(err, bridge.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	discovered, err := r.movies.Discover(ctx, genreID, tmdb.SortPopularityDesc)
	if err != nil {
		return nil, err
	}

	results := make([]Recommendation, 0, limit)
	for _, m := range truncateMovies(discovered, limit) {
		results = append(results, NormalizeMovie(m))
	}
	return results, nil
}

// Detail resolves the detail view for one item. Malformed IDs and every
// upstream failure surface as ErrNotFound.
func (r *Recommender) Detail(ctx context.Context, id, kind string) (*Detail, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	switch NormalizeKind(kind) {
	case KindMovie:
		movieID, err := strconv.Atoi(id)
		if err != nil {
			return nil, ErrNotFound
		}
		details, err := r.movies.MovieDetails(ctx, movieID)
		if err != nil {
			r.logger.Warn("movie detail lookup failed", "id", id, "error", err)
			return nil, ErrNotFound
		}
		return MovieDetailView(details), nil

	case KindBook:
		// Book IDs arrive as strings like "135" or "135.0"; coerce through
		// float so either form resolves.
		f, err := strconv.ParseFloat(id, 64)
		if err != nil {
			return nil, ErrNotFound
		}
		book, err := r.books.BookInformation(ctx, int(f))
		if err != nil {
			r.logger.Warn("book detail lookup failed", "id", id, "error", err)
			return nil, ErrNotFound
		}
		return BookDetailView(book), nil

	default:
		return nil, ErrNotFound
	}
}

// Popular returns the home feed of popular movies. Failures are absorbed
// into an empty feed.
func (r *Recommender) Popular(ctx context.Context) []Featured {
	popular, err := r.movies.Popular(ctx)
	if err != nil {
		r.logger.Warn("popular movies lookup failed", "error", err)
		return []Featured{}
	}

	feed := make([]Featured, 0, featuredCount)
	for _, m := range truncateMovies(popular, featuredCount) {
		feed = append(feed, NormalizeFeatured(m))
	}
	return feed
}

// truncateMovies bounds a movie list to at most limit entries.
func truncateMovies(movies []tmdb.Movie, limit int) []tmdb.Movie {
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}
