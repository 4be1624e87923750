package tmdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a stub API server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient("test-key", logger)
	c.SetBaseURL(srv.URL)
	return c
}

func TestSearchMovies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"page":1,"results":[
			{"id":27205,"title":"Inception","release_date":"2010-07-15","poster_path":"/inc.jpg","vote_average":8.4},
			{"id":64956,"title":"Inception: The Cobol Job","release_date":"2010-12-07"}
		]}`)
	})

	got, err := c.SearchMovies(context.Background(), "Inception")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 27205, got[0].ID)
	assert.Equal(t, "Inception", got[0].Title)
	assert.Equal(t, "2010-07-15", got[0].ReleaseDate)
	assert.Equal(t, "/inc.jpg", got[0].PosterPath)
}

func TestMovieDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205", r.URL.Path)
		io.WriteString(w, `{"id":27205,"title":"Inception","release_date":"2010-07-15",
			"overview":"A thief who steals corporate secrets.",
			"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],
			"vote_average":8.4}`)
	})

	got, err := c.MovieDetails(context.Background(), 27205)
	require.NoError(t, err)
	assert.Equal(t, "Inception", got.Title)
	require.Len(t, got.Genres, 2)
	assert.Equal(t, 28, got.Genres[0].ID)
	assert.Equal(t, "Action", got.Genres[0].Name)
}

func TestRecommendations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/42/recommendations", r.URL.Path)
		io.WriteString(w, `{"results":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`)
	})

	got, err := c.Recommendations(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDiscover(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "14", r.URL.Query().Get("with_genres"))
		assert.Equal(t, SortPopularityDesc, r.URL.Query().Get("sort_by"))
		io.WriteString(w, `{"results":[{"id":7,"title":"Fantasy Flick","popularity":99.5}]}`)
	})

	got, err := c.Discover(context.Background(), 14, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fantasy Flick", got[0].Title)
}

func TestPopular(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		io.WriteString(w, `{"results":[{"id":3,"title":"Popular One","vote_average":7.1}]}`)
	})

	got, err := c.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7.1, got[0].VoteAverage)
}

func TestGenreList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		io.WriteString(w, `{"genres":[{"id":14,"name":"Fantasy"},{"id":878,"name":"Science Fiction"}]}`)
	})

	got, err := c.GenreList(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Fantasy", got[0].Name)
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}

	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})

		_, err := c.SearchMovies(context.Background(), "x")
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestMalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results": not json`)
	})

	_, err := c.Popular(context.Background())
	assert.Error(t, err)
}
