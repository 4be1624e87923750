package recommend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/reelread/reelread-server/internal/bridge"
	"github.com/reelread/reelread-server/internal/catalog/bigbook"
	"github.com/reelread/reelread-server/internal/catalog/tmdb"
)

// fakeMovies is a scriptable MovieCatalog that counts calls.
type fakeMovies struct {
	searchFn    func(query string) ([]tmdb.Movie, error)
	detailsFn   func(id int) (*tmdb.MovieDetails, error)
	recsFn      func(id int) ([]tmdb.Movie, error)
	discoverFn  func(genreID int, sort string) ([]tmdb.Movie, error)
	popularFn   func() ([]tmdb.Movie, error)
	calls       int
	discoverGot struct {
		genreID int
		sort    string
	}
}

func (f *fakeMovies) SearchMovies(_ context.Context, query string) ([]tmdb.Movie, error) {
	f.calls++
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(query)
}

func (f *fakeMovies) MovieDetails(_ context.Context, id int) (*tmdb.MovieDetails, error) {
	f.calls++
	if f.detailsFn == nil {
		return nil, tmdb.ErrNotFound
	}
	return f.detailsFn(id)
}

func (f *fakeMovies) Recommendations(_ context.Context, id int) ([]tmdb.Movie, error) {
	f.calls++
	if f.recsFn == nil {
		return nil, nil
	}
	return f.recsFn(id)
}

func (f *fakeMovies) Discover(_ context.Context, genreID int, sort string) ([]tmdb.Movie, error) {
	f.calls++
	f.discoverGot.genreID = genreID
	f.discoverGot.sort = sort
	if f.discoverFn == nil {
		return nil, nil
	}
	return f.discoverFn(genreID, sort)
}

func (f *fakeMovies) Popular(_ context.Context) ([]tmdb.Movie, error) {
	f.calls++
	if f.popularFn == nil {
		return nil, nil
	}
	return f.popularFn()
}

// fakeBooks is a scriptable BookCatalog that counts calls.
type fakeBooks struct {
	searchFn  func(p bigbook.SearchParams) ([][]bigbook.Book, error)
	similarFn func(id, number int) ([]bigbook.Book, error)
	infoFn    func(id int) (*bigbook.Book, error)
	calls     int
}

func (f *fakeBooks) SearchBooks(_ context.Context, p bigbook.SearchParams) ([][]bigbook.Book, error) {
	f.calls++
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(p)
}

func (f *fakeBooks) SimilarBooks(_ context.Context, id, number int) ([]bigbook.Book, error) {
	f.calls++
	if f.similarFn == nil {
		return nil, nil
	}
	return f.similarFn(id, number)
}

func (f *fakeBooks) BookInformation(_ context.Context, id int) (*bigbook.Book, error) {
	f.calls++
	if f.infoFn == nil {
		return nil, bigbook.ErrNotFound
	}
	return f.infoFn(id)
}

// fakeBridge maps genres in both directions.
type fakeBridge struct {
	toMovie map[string]int
	toBook  map[int]string
	calls   int
}

func (f *fakeBridge) MovieGenreID(_ context.Context, name string) (int, error) {
	f.calls++
	if id, ok := f.toMovie[name]; ok {
		return id, nil
	}
	return 0, bridge.ErrNotFound
}

func (f *fakeBridge) BookGenreName(_ context.Context, id int) (string, error) {
	f.calls++
	if name, ok := f.toBook[id]; ok {
		return name, nil
	}
	return "", bridge.ErrNotFound
}

func newTestRecommender(movies *fakeMovies, books *fakeBooks, gb *fakeBridge) *Recommender {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(movies, books, gb, 4, logger)
}

func TestMovieToMovie(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(query string) ([]tmdb.Movie, error) {
			if query != "Inception" {
				t.Errorf("search query: got %q", query)
			}
			return []tmdb.Movie{{ID: 42, Title: "Inception"}}, nil
		},
		recsFn: func(id int) ([]tmdb.Movie, error) {
			if id != 42 {
				t.Errorf("recommendations id: got %d, want 42", id)
			}
			return []tmdb.Movie{
				{ID: 1, Title: "Rec1", ReleaseDate: "2011-01-01"},
				{ID: 2, Title: "Rec2"},
				{ID: 3, Title: "Rec3"},
			}, nil
		},
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{
		SourceKind: "movie", TargetKind: "movie", Query: "Inception", Limit: 2,
	})

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	for _, rec := range got {
		if rec.Kind != "Movie" {
			t.Errorf("Kind: got %q, want Movie", rec.Kind)
		}
		if rec.Title == "" {
			t.Error("empty title")
		}
	}
}

func TestMovieToMovie_NoSearchMatch(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(string) ([]tmdb.Movie, error) { return nil, nil },
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{SourceKind: "movie", TargetKind: "movie", Query: "zzz"})
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestMovieToMovie_UpstreamFailureAbsorbed(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(string) ([]tmdb.Movie, error) { return nil, errors.New("connection refused") },
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{SourceKind: "movie", TargetKind: "movie", Query: "x"})
	if len(got) != 0 {
		t.Errorf("failure must yield empty list, got %d results", len(got))
	}
}

func TestBookToBook_EnrichesYearPerItem(t *testing.T) {
	books := &fakeBooks{
		searchFn: func(p bigbook.SearchParams) ([][]bigbook.Book, error) {
			if p.Query != "Dune" || p.Number != 1 {
				t.Errorf("search params: %+v", p)
			}
			return [][]bigbook.Book{{{ID: 135, Title: "Dune"}}}, nil
		},
		similarFn: func(id, number int) ([]bigbook.Book, error) {
			if id != 135 {
				t.Errorf("similar id: got %d", id)
			}
			return []bigbook.Book{
				{ID: 200, Title: "Dune Messiah", Image: "img2.jpg"},
				{ID: 201, Title: "Children of Dune"},
			}, nil
		},
		infoFn: func(id int) (*bigbook.Book, error) {
			if id == 200 {
				return &bigbook.Book{ID: 200, PublishDate: f64(1969)}, nil
			}
			// Detail lookup failure degrades the year, never drops the item.
			return nil, bigbook.ErrServer
		},
	}
	r := newTestRecommender(&fakeMovies{}, books, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{SourceKind: "book", TargetKind: "book", Query: "Dune", Limit: 2})

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Year != "1969" {
		t.Errorf("enriched year: got %q, want 1969", got[0].Year)
	}
	if got[1].Year != "N/A" {
		t.Errorf("failed enrichment year: got %q, want N/A", got[1].Year)
	}
	if got[0].Kind != "Book" || got[1].Kind != "Book" {
		t.Errorf("Kind: got %q/%q", got[0].Kind, got[1].Kind)
	}
}

func TestBookToBook_EmptyFirstGroup(t *testing.T) {
	books := &fakeBooks{
		searchFn: func(bigbook.SearchParams) ([][]bigbook.Book, error) {
			return [][]bigbook.Book{{}}, nil
		},
	}
	r := newTestRecommender(&fakeMovies{}, books, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{SourceKind: "book", TargetKind: "book", Query: "Unknown"})
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestMovieToBook_BridgesFirstGenre(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(string) ([]tmdb.Movie, error) {
			return []tmdb.Movie{{ID: 603, Title: "The Matrix"}}, nil
		},
		detailsFn: func(id int) (*tmdb.MovieDetails, error) {
			return &tmdb.MovieDetails{
				ID:    603,
				Title: "The Matrix",
				// First genre wins; the rest are ignored.
				Genres: []tmdb.Genre{{ID: 878, Name: "Science Fiction"}, {ID: 28, Name: "Action"}},
			}, nil
		},
	}
	books := &fakeBooks{
		searchFn: func(p bigbook.SearchParams) ([][]bigbook.Book, error) {
			if p.Genres != "science fiction" {
				t.Errorf("book genre: got %q", p.Genres)
			}
			if p.Sort != bigbook.SortRating {
				t.Errorf("sort: got %q", p.Sort)
			}
			return [][]bigbook.Book{
				{{ID: 1, Title: "Neuromancer", PublishDate: f64(1984)}},
				{}, // empty group skipped
				{{ID: 2, Title: "Hyperion", PublishDate: f64(1989)}},
			}, nil
		},
	}
	gb := &fakeBridge{toBook: map[int]string{878: "science fiction"}}
	r := newTestRecommender(movies, books, gb)

	got := r.Recommend(context.Background(), Request{SourceKind: "movie", TargetKind: "book", Query: "The Matrix", Limit: 5})

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Title != "Neuromancer" || got[0].Year != "1984" {
		t.Errorf("first result: %+v", got[0])
	}
	if gb.calls != 1 {
		t.Errorf("bridge calls: got %d, want exactly 1", gb.calls)
	}
}

func TestMovieToBook_NoGenresOnDetails(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(string) ([]tmdb.Movie, error) {
			return []tmdb.Movie{{ID: 1, Title: "X"}}, nil
		},
		detailsFn: func(int) (*tmdb.MovieDetails, error) {
			return &tmdb.MovieDetails{ID: 1, Title: "X"}, nil
		},
	}
	books := &fakeBooks{}
	r := newTestRecommender(movies, books, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{SourceKind: "movie", TargetKind: "book", Query: "X"})
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
	if books.calls != 0 {
		t.Errorf("book catalog must not be called, got %d calls", books.calls)
	}
}

func TestMovieToBook_UnmappedGenre(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(string) ([]tmdb.Movie, error) {
			return []tmdb.Movie{{ID: 1, Title: "X"}}, nil
		},
		detailsFn: func(int) (*tmdb.MovieDetails, error) {
			return &tmdb.MovieDetails{ID: 1, Genres: []tmdb.Genre{{ID: 10770, Name: "TV Movie"}}}, nil
		},
	}
	books := &fakeBooks{}
	r := newTestRecommender(movies, books, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{SourceKind: "movie", TargetKind: "book", Query: "X"})
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
	if books.calls != 0 {
		t.Errorf("book catalog must not be called on a bridge miss, got %d calls", books.calls)
	}
}

func TestMovieToBook_EmptyQuery(t *testing.T) {
	movies := &fakeMovies{}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	got := r.Recommend(context.Background(), Request{SourceKind: "movie", TargetKind: "book", Query: ""})
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
	if movies.calls != 0 {
		t.Errorf("movie catalog must not be called, got %d calls", movies.calls)
	}
}

func TestBookToMovie_DiscoversByBridgedGenre(t *testing.T) {
	movies := &fakeMovies{
		discoverFn: func(genreID int, sort string) ([]tmdb.Movie, error) {
			return []tmdb.Movie{
				{ID: 10, Title: "F1", ReleaseDate: "2018-09-15", PosterPath: "/gen.jpg"},
				{ID: 11, Title: "F2"},
				{ID: 12, Title: "F3"},
				{ID: 13, Title: "F4"},
			}, nil
		},
	}
	gb := &fakeBridge{toMovie: map[string]int{"fantasy": 14}}
	r := newTestRecommender(movies, &fakeBooks{}, gb)

	got := r.Recommend(context.Background(), Request{SourceKind: "book", TargetKind: "movie", Genre: "  Fantasy ", Limit: 3})

	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if movies.discoverGot.genreID != 14 {
		t.Errorf("discover genre id: got %d, want 14", movies.discoverGot.genreID)
	}
	if movies.discoverGot.sort != tmdb.SortPopularityDesc {
		t.Errorf("discover sort: got %q", movies.discoverGot.sort)
	}
	if got[0].Year != "2018" {
		t.Errorf("Year: got %q, want 2018", got[0].Year)
	}
}

func TestBookToMovie_NoGenreSkipsAllCalls(t *testing.T) {
	movies := &fakeMovies{}
	gb := &fakeBridge{toMovie: map[string]int{"fantasy": 14}}
	r := newTestRecommender(movies, &fakeBooks{}, gb)

	got := r.Recommend(context.Background(), Request{SourceKind: "book", TargetKind: "movie", Query: "Dune"})

	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
	if movies.calls != 0 || gb.calls != 0 {
		t.Errorf("no external service may be touched: movies=%d bridge=%d", movies.calls, gb.calls)
	}
}

func TestUnsupportedKindPairs(t *testing.T) {
	movies := &fakeMovies{}
	books := &fakeBooks{}
	r := newTestRecommender(movies, books, &fakeBridge{})

	for _, req := range []Request{
		{SourceKind: "album", TargetKind: "movie", Query: "x"},
		{SourceKind: "movie", TargetKind: "album", Query: "x"},
		{SourceKind: "", TargetKind: "", Query: "x"},
	} {
		got := r.Recommend(context.Background(), req)
		if len(got) != 0 {
			t.Errorf("%s->%s: got %d results, want 0", req.SourceKind, req.TargetKind, len(got))
		}
	}
	if movies.calls != 0 || books.calls != 0 {
		t.Errorf("unsupported pairs must not reach a catalog: movies=%d books=%d", movies.calls, books.calls)
	}
}

func TestRecommend_DefaultLimit(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(string) ([]tmdb.Movie, error) {
			return []tmdb.Movie{{ID: 1, Title: "Seed"}}, nil
		},
		recsFn: func(int) ([]tmdb.Movie, error) {
			recs := make([]tmdb.Movie, 10)
			for i := range recs {
				recs[i] = tmdb.Movie{ID: i + 100, Title: "Rec"}
			}
			return recs, nil
		},
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	// Zero and negative limits fall back to the configured default of 4.
	for _, limit := range []int{0, -2} {
		got := r.Recommend(context.Background(), Request{SourceKind: "movie", TargetKind: "movie", Query: "Seed", Limit: limit})
		if len(got) != 4 {
			t.Errorf("limit %d: got %d results, want 4", limit, len(got))
		}
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	movies := &fakeMovies{
		searchFn: func(string) ([]tmdb.Movie, error) {
			return []tmdb.Movie{{ID: 42, Title: "Inception"}}, nil
		},
		recsFn: func(int) ([]tmdb.Movie, error) {
			return []tmdb.Movie{{ID: 1, Title: "A", ReleaseDate: "2011-05-01"}, {ID: 2, Title: "B"}}, nil
		},
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})
	req := Request{SourceKind: "movie", TargetKind: "movie", Query: "Inception", Limit: 2}

	first := r.Recommend(context.Background(), req)
	second := r.Recommend(context.Background(), req)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDetail_Movie(t *testing.T) {
	movies := &fakeMovies{
		detailsFn: func(id int) (*tmdb.MovieDetails, error) {
			if id != 42 {
				t.Errorf("id: got %d, want 42", id)
			}
			return &tmdb.MovieDetails{ID: 42, Title: "TestMov", ReleaseDate: "1998-04-02"}, nil
		},
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	d, err := r.Detail(context.Background(), "42", "movie")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Title != "TestMov" || d.Kind != "Movie" {
		t.Errorf("detail: %+v", d)
	}
}

func TestDetail_BookIDCoercion(t *testing.T) {
	books := &fakeBooks{
		infoFn: func(id int) (*bigbook.Book, error) {
			if id != 22 {
				t.Errorf("id: got %d, want 22", id)
			}
			return &bigbook.Book{ID: 22, Title: "BookTitle"}, nil
		},
	}
	r := newTestRecommender(&fakeMovies{}, books, &fakeBridge{})

	// Both integer and float forms resolve.
	for _, id := range []string{"22", "22.0"} {
		d, err := r.Detail(context.Background(), id, "book")
		if err != nil {
			t.Fatalf("Detail(%q): %v", id, err)
		}
		if d.Title != "BookTitle" {
			t.Errorf("Detail(%q): %+v", id, d)
		}
	}
}

func TestDetail_NotFoundCases(t *testing.T) {
	books := &fakeBooks{}
	movies := &fakeMovies{}
	r := newTestRecommender(movies, books, &fakeBridge{})

	tests := []struct {
		name string
		id   string
		kind string
	}{
		{"non-numeric book id", "abc", "book"},
		{"non-numeric movie id", "abc", "movie"},
		{"empty id", "", "movie"},
		{"unknown kind", "1", "album"},
		{"upstream miss", "999", "movie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Detail(context.Background(), tt.id, tt.kind)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("got %v, want ErrNotFound", err)
			}
		})
	}

	// Malformed IDs short-circuit before any catalog call. Only the
	// "upstream miss" case above may touch the movie catalog.
	if movies.calls != 1 {
		t.Errorf("movie catalog calls: got %d, want 1", movies.calls)
	}
	if books.calls != 0 {
		t.Errorf("book catalog calls: got %d, want 0", books.calls)
	}
}

func TestPopular(t *testing.T) {
	movies := &fakeMovies{
		popularFn: func() ([]tmdb.Movie, error) {
			return []tmdb.Movie{
				{ID: 1, Title: "Pop1", ReleaseDate: "1999-05-02", PosterPath: "/p1.jpg"},
				{ID: 2, Title: "Pop2", ReleaseDate: "2001-06-14"},
				{ID: 3, Title: "Pop3", ReleaseDate: "2002-08-01"},
				{ID: 4, Title: "Pop4"},
				{ID: 5, Title: "Pop5"},
			}, nil
		},
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	feed := r.Popular(context.Background())
	if len(feed) != 4 {
		t.Fatalf("got %d entries, want 4", len(feed))
	}
	if feed[0].Title != "Pop1" || feed[0].Year != "1999" {
		t.Errorf("first entry: %+v", feed[0])
	}
	if feed[3].Year != "N/A" {
		t.Errorf("missing release date must degrade: %+v", feed[3])
	}
}

func TestPopular_FailureAbsorbed(t *testing.T) {
	movies := &fakeMovies{
		popularFn: func() ([]tmdb.Movie, error) { return nil, tmdb.ErrServer },
	}
	r := newTestRecommender(movies, &fakeBooks{}, &fakeBridge{})

	feed := r.Popular(context.Background())
	if len(feed) != 0 {
		t.Errorf("got %d entries, want 0", len(feed))
	}
}
