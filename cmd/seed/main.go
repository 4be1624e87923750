// Package main provides a tool to seed the genre bridge table.
//
// By default it loads the built-in book-to-movie genre mapping, resolving
// movie genre names to catalog IDs against the live TMDb genre list. A CSV
// file of "book_genre,movie_genre_id" rows can be supplied instead.
//
// Usage:
//
//	TMDB_API_KEY=... go run ./cmd/seed -db ~/ReelRead/bridge.db
//	go run ./cmd/seed -db ~/ReelRead/bridge.db -from-csv mapping.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/reelread/reelread-server/internal/bridge"
	"github.com/reelread/reelread-server/internal/catalog/tmdb"
	"github.com/reelread/reelread-server/internal/config"
	"github.com/reelread/reelread-server/internal/genre"
)

var (
	dbPath  = flag.String("db", "", "Path to the bridge database (default: config value)")
	fromCSV = flag.String("from-csv", "", "Load mappings from a CSV file instead of the built-in seed")
)

func main() {
	flag.Parse()

	path := *dbPath
	if path == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		path = cfg.Bridge.DBPath
	}

	fmt.Printf("Opening bridge database at: %s\n", path)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, err := bridge.Open(path, logger)
	if err != nil {
		log.Fatalf("Failed to open bridge database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	var mappings []bridge.Mapping
	if *fromCSV != "" {
		mappings, err = loadCSV(*fromCSV)
		if err != nil {
			log.Fatalf("Failed to load CSV: %v", err)
		}
	} else {
		mappings, err = resolveBuiltinSeeds(ctx, logger)
		if err != nil {
			log.Fatalf("Failed to resolve built-in seeds: %v", err)
		}
	}

	if err := store.Reset(ctx); err != nil {
		log.Fatalf("Failed to reset bridge table: %v", err)
	}

	for _, m := range mappings {
		if err := store.PutMapping(ctx, m); err != nil {
			log.Fatalf("Failed to insert mapping %q -> %d: %v", m.BookGenreName, m.MovieGenreID, err)
		}
	}

	loaded, err := store.ListBookGenres(ctx)
	if err != nil {
		log.Fatalf("Failed to read back seeded genres: %v", err)
	}

	fmt.Printf("Seeded %d mappings covering %d book genres: %s\n",
		len(mappings), len(loaded), strings.Join(loaded, ", "))
}

// resolveBuiltinSeeds turns the built-in name-to-name seed list into concrete
// mappings by resolving movie genre names against the live catalog.
func resolveBuiltinSeeds(ctx context.Context, logger *slog.Logger) ([]bridge.Mapping, error) {
	apiKey := os.Getenv("TMDB_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required to resolve the built-in seed")
	}

	client := tmdb.NewClient(apiKey, logger)
	genres, err := client.GenreList(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch genre list: %w", err)
	}

	byName := make(map[string]int, len(genres))
	for _, g := range genres {
		byName[g.Name] = g.ID
	}

	mappings := make([]bridge.Mapping, 0, len(genre.DefaultBridgeSeeds))
	for _, seed := range genre.DefaultBridgeSeeds {
		id, ok := byName[seed.MovieGenre]
		if !ok {
			fmt.Printf("Skipping %q: movie genre %q not in catalog\n", seed.BookGenre, seed.MovieGenre)
			continue
		}
		mappings = append(mappings, bridge.Mapping{
			BookGenreName: genre.Normalize(seed.BookGenre),
			MovieGenreID:  id,
		})
	}
	return mappings, nil
}

// loadCSV reads "book_genre,movie_genre_id" rows. Blank lines and a header
// row are tolerated.
func loadCSV(path string) ([]bridge.Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	var mappings []bridge.Mapping
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			// Header row.
			if len(mappings) == 0 {
				continue
			}
			return nil, fmt.Errorf("row %q: %w", record, err)
		}

		name := genre.Normalize(record[0])
		if name == "" {
			return nil, fmt.Errorf("row %q: empty book genre", record)
		}

		mappings = append(mappings, bridge.Mapping{BookGenreName: name, MovieGenreID: id})
	}
	return mappings, nil
}
