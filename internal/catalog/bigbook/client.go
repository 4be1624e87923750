package bigbook

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
	defaultBaseURL = "https://api.bigbookapi.com"
	defaultTimeout = 30 * time.Second

	// SortRating orders search results by rating, best first.
	SortRating = "rating"
)

// Client is a rate-limited Big Book API client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewClient creates a new Big Book client.
// Rate limited to 1 request per second, the free-tier ceiling.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
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

// SearchBooks searches the catalog. The result is grouped: each inner slice
// holds the editions of one matched work, best match first.
func (c *Client) SearchBooks(ctx context.Context, p SearchParams) ([][]Book, error) {
	params := url.Values{}
	if p.Query != "" {
		params.Set("query", p.Query)
	}
	if p.Genres != "" {
		params.Set("genres", p.Genres)
	}
	if p.Sort != "" {
		params.Set("sort", p.Sort)
	}
	if p.Number > 0 {
		params.Set("number", strconv.Itoa(p.Number))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search-books", params, &resp); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return resp.Books, nil
}

// SimilarBooks returns books similar to the given one, up to number entries.
// The listing omits publication data; callers needing a year must follow up
// with BookInformation per item.
func (c *Client) SimilarBooks(ctx context.Context, id, number int) ([]Book, error) {
	params := url.Values{}
	if number > 0 {
		params.Set("number", strconv.Itoa(number))
	}

	var resp similarResponse
	if err := c.get(ctx, "/"+strconv.Itoa(id)+"/similar-books", params, &resp); err != nil {
		return nil, fmt.Errorf("similar books %d: %w", id, err)
	}
	return resp.SimilarBooks, nil
}

// BookInformation fetches the full record for one book.
func (c *Client) BookInformation(ctx context.Context, id int) (*Book, error) {
	var book Book
	if err := c.get(ctx, "/"+strconv.Itoa(id), nil, &book); err != nil {
		return nil, fmt.Errorf("book information %d: %w", id, err)
	}
	return &book, nil
}

// get executes a rate-limited GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	c.logger.Debug("bigbook request", "path", path)

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
	case http.StatusUnauthorized, http.StatusPaymentRequired:
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
