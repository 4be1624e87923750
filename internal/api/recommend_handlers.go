package api

import (
	"net/http"
	"strconv"

	"github.com/reelread/reelread-server/internal/http/response"
	"github.com/reelread/reelread-server/internal/recommend"
)

// handleRecommendations serves GET /api/v1/recommendations.
//
// Query parameters: inputKind, targetKind, q, genre, limit. A missing or
// malformed limit falls back to the configured default rather than failing
// the request; the recommendation pipeline absorbs upstream failures, so
// this endpoint always answers 200 with a (possibly empty) list.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	results := s.recommender.Recommend(r.Context(), recommend.Request{
		SourceKind: q.Get("inputKind"),
		TargetKind: q.Get("targetKind"),
		Query:      q.Get("q"),
		Genre:      q.Get("genre"),
		Limit:      limit,
	})

	response.Success(w, results, s.logger)
}

// handleDetail serves GET /api/v1/detail.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	id, kind := q.Get("id"), q.Get("kind")
	if id == "" || kind == "" {
		response.BadRequest(w, "id and kind are required", s.logger)
		return
	}

	detail, err := s.recommender.Detail(r.Context(), id, kind)
	if err != nil {
		response.NotFound(w, "title not found", s.logger)
		return
	}

	response.Success(w, detail, s.logger)
}

// handlePopular serves GET /api/v1/popular.
func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.recommender.Popular(r.Context()), s.logger)
}
