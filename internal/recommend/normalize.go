package recommend

import (
	"math"
	"strconv"

	"github.com/reelread/reelread-server/internal/catalog/bigbook"
	"github.com/reelread/reelread-server/internal/catalog/tmdb"
)

const (
	// posterBaseURL prefixes relative movie poster paths.
	posterBaseURL = "https://image.tmdb.org/t/p/w500"
	// placeholderImage is served when neither catalog provides artwork.
	placeholderImage = "/static/images/image-not-available.jpg"
	// yearUnknown is the fallback for missing publication data.
	yearUnknown = "N/A"
	// noDescription is the fallback for an empty book description.
	noDescription = "No description available."
)

// movieYear extracts the 4-digit year from a release date like "1999-03-31".
func movieYear(releaseDate string) string {
	if releaseDate == "" {
		return yearUnknown
	}
	if len(releaseDate) < 4 {
		return releaseDate
	}
	return releaseDate[:4]
}

// movieImage builds an absolute poster URL, or the placeholder.
func movieImage(posterPath string) string {
	if posterPath == "" {
		return placeholderImage
	}
	return posterBaseURL + posterPath
}

// bookYear renders a publish date like 1965.0 as "1965".
func bookYear(publishDate *float64) string {
	if publishDate == nil {
		return yearUnknown
	}
	return strconv.Itoa(int(*publishDate))
}

// bookImage returns the cover URL, or the placeholder.
func bookImage(image string) string {
	if image == "" {
		return placeholderImage
	}
	return image
}

// bookRating scales the 0..1 average to a 0..10 score with one decimal,
// rendered as a string for the detail view.
func bookRating(r *bigbook.Rating) string {
	if r == nil {
		return yearUnknown
	}
	scaled := math.Round(r.Average*10*10) / 10
	return strconv.FormatFloat(scaled, 'f', -1, 64)
}

// NormalizeMovie converts a raw catalog movie into the uniform record.
func NormalizeMovie(m tmdb.Movie) Recommendation {
	return Recommendation{
		ID:    m.ID,
		Title: m.Title,
		Year:  movieYear(m.ReleaseDate),
		Image: movieImage(m.PosterPath),
		Kind:  LabelMovie,
	}
}

// NormalizeBook converts a raw catalog book into the uniform record.
// Listings that omit publish_date yield Year "N/A"; callers that enrich the
// year afterwards overwrite the field.
func NormalizeBook(b bigbook.Book) Recommendation {
	return Recommendation{
		ID:    b.ID,
		Title: b.Title,
		Year:  bookYear(b.PublishDate),
		Image: bookImage(b.Image),
		Kind:  LabelBook,
	}
}

// NormalizeFeatured converts a popular-listing movie into a home feed entry.
func NormalizeFeatured(m tmdb.Movie) Featured {
	return Featured{
		ID:     m.ID,
		Title:  m.Title,
		Year:   movieYear(m.ReleaseDate),
		Rating: m.VoteAverage,
		Poster: movieImage(m.PosterPath),
		Kind:   LabelMovie,
	}
}

// MovieDetailView converts a raw movie detail record into the detail view.
func MovieDetailView(d *tmdb.MovieDetails) *Detail {
	tags := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		tags = append(tags, g.Name)
	}
	return &Detail{
		Title:       d.Title,
		Year:        movieYear(d.ReleaseDate),
		Rating:      strconv.FormatFloat(d.VoteAverage, 'f', -1, 64),
		Image:       movieImage(d.PosterPath),
		Description: d.Overview,
		Kind:        LabelMovie,
		Tags:        tags,
	}
}

// BookDetailView converts a raw book record into the detail view.
func BookDetailView(b *bigbook.Book) *Detail {
	tags := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		tags = append(tags, a.Name)
	}
	desc := b.Description
	if desc == "" {
		desc = noDescription
	}
	return &Detail{
		Title:       b.Title,
		Year:        bookYear(b.PublishDate),
		Rating:      bookRating(b.Rating),
		Image:       bookImage(b.Image),
		Description: desc,
		Kind:        LabelBook,
		Tags:        tags,
	}
}
