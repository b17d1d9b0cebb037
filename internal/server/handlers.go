package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"coolfinds/internal/media"

	"github.com/go-chi/chi/v5"
)

type generateArticleRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Style    string `json:"style"`
}

type deleteArticleRequest struct {
	Slug string `json:"slug"`
}

// handleGenerateArticle handles POST /api/generate-article. The article is
// returned to the caller without being stored; the autonomous run is the
// only path that persists.
func (s *Server) handleGenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req generateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	article, err := s.articles.Synthesize(r.Context(), req.Topic, req.Category, req.Style)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.respondJSON(w, http.StatusOK, article)
}

// handleListArticles handles GET /api/articles
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListArticles()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, articles)
}

// handleGetProducts handles GET /api/products. The stored batch is raw JSON
// already, so it passes through without a decode round trip.
func (s *Server) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.FeaturedProductsJSON()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, raw); err != nil {
		s.log.Error("Failed to write products response", "error", err)
	}
}

// handleGenerateProducts handles POST /api/admin/generate-products
func (s *Server) handleGenerateProducts(w http.ResponseWriter, r *http.Request) {
	batch := s.products.Generate(r.Context())
	if err := s.store.PutFeaturedProducts(batch); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(batch),
	})
}

// handleRunAutonomous handles POST /api/admin/run-autonomous
func (s *Server) handleRunAutonomous(w http.ResponseWriter, r *http.Request) {
	result := s.runner.Run(r.Context())
	s.respondJSON(w, http.StatusOK, result)
}

// handleClearArticles handles POST /api/admin/clear-articles. Every stored
// key goes, the featured batch included, matching a full reset.
func (s *Server) handleClearArticles(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.List()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	for _, key := range keys {
		if err := s.store.Delete(key); err != nil {
			s.respondError(w, http.StatusInternalServerError, err)
			return
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Deleted %d articles", len(keys)),
	})
}

// handleDeleteArticle handles POST /api/admin/delete-article
func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	var req deleteArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	deleted, err := s.store.DeleteArticlesBySlug(req.Slug)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"deletedCount": deleted,
	})
}

// handleListImages handles GET /api/admin/list-images
func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	keys, err := s.media.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	s.respondJSON(w, http.StatusOK, keys)
}

// handleServeImage handles GET /media/{key}. Hero keys are content-addressed
// by timestamp, so the browser may cache them forever.
func (s *Server) handleServeImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	obj, err := s.media.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(obj.Body); err != nil {
		s.log.Error("Failed to write image response", "error", err, "key", key)
	}
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Amazing Cool Finds API - Autonomous Mode Active")
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes the worker-style {"error": "..."} payload.
func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
