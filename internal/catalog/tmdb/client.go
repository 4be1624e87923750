package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 30 * time.Second
)

// Sort orders accepted by Discover.
const (
	SortPopularityDesc = "popularity.desc"
	SortRatingDesc     = "vote_average.desc"
)

// Client is a rate-limited TMDb API client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewClient creates a new TMDb client.
// Rate limited to roughly 40 requests per 10 seconds per TMDb guidance.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 10),
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {}

// SearchMovies searches the catalog by title and returns the ranked result list.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp listResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return resp.Results, nil
}

// MovieDetails fetches the full detail record for a movie, including its
// genre list.
func (c *Client) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil, &details); err != nil {
		return nil, fmt.Errorf("movie details %d: %w", id, err)
	}
	return &details, nil
}

// Recommendations returns the catalog's recommended movies for the given ID.
func (c *Client) Recommendations(ctx context.Context, id int) ([]Movie, error) {
	var resp listResponse
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id)+"/recommendations", nil, &resp); err != nil {
		return nil, fmt.Errorf("recommendations %d: %w", id, err)
	}
	return resp.Results, nil
}

// Discover lists movies filtered by genre ID in the given sort order.
func (c *Client) Discover(ctx context.Context, genreID int, sort string) ([]Movie, error) {
	if sort == "" {
		sort = SortPopularityDesc
	}
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", sort)

	var resp listResponse
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("discover genre %d: %w", genreID, err)
	}
	return resp.Results, nil
}

// Popular returns the catalog's current popular movies.
func (c *Client) Popular(ctx context.Context) ([]Movie, error) {
	var resp listResponse
	if err := c.get(ctx, "/movie/popular", nil, &resp); err != nil {
		return nil, fmt.Errorf("popular movies: %w", err)
	}
	return resp.Results, nil
}

// GenreList returns the catalog's movie genre vocabulary.
func (c *Client) GenreList(ctx context.Context) ([]Genre, error) {
	var resp genreListResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, fmt.Errorf("genre list: %w", err)
	}
	return resp.Genres, nil
}

// get executes a rate-limited GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if resp.StatusCode >= 500 {
			return ErrServer
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.UnmarshalRead(resp.Body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
