// Package bigbook provides a client for the Big Book REST API.
package bigbook

// Book is a single book record. Listing responses populate only a subset of
// these fields; BookInformation returns the full record.
type Book struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	PublishDate *float64 `json:"publish_date"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Rating      *Rating  `json:"rating"`
	Authors     []Author `json:"authors"`
	Genres      []string `json:"genres"`
}

// Rating is the aggregate rating block on a book record.
type Rating struct {
	Average float64 `json:"average"`
}

// Author is a contributor entry on a book record.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchParams are the filters accepted by SearchBooks. Exactly one of Query
// or Genres is normally set.
type SearchParams struct {
	Query  string
	Genres string
	Sort   string
	Number int
}

// searchResponse is the raw search envelope. Books is grouped: each inner
// slice holds the editions of one work, best match first.
type searchResponse struct {
	Available int      `json:"available"`
	Number    int      `json:"number"`
	Offset    int      `json:"offset"`
	Books     [][]Book `json:"books"`
}

// similarResponse is the raw find-similar envelope.
type similarResponse struct {
	SimilarBooks []Book `json:"similar_books"`
}
