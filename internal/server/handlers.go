package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akiyama/shirabe/internal/comments"
	"github.com/akiyama/shirabe/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	language := r.URL.Query().Get("language")
	s.logger.Debug("search request", zap.String("query", query), zap.String("language", language))

	response, err := s.searcher.Search(r.Context(), query, language)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	cloud, err := s.searcher.TagCloud(r.Context(), language)
	if err != nil {
		s.logger.Error("tag cloud failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tags":  cloud,
		"count": len(cloud),
	})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	flat, err := s.comments.ListByPost(r.Context(), postID)
	if err != nil {
		s.logger.Error("listing comments failed", zap.String("post_id", postID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	tree := comments.BuildTree(flat)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"comments": tree,
		"count":    len(flat),
	})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	var input models.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := input.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		ParentID:  input.ParentID,
		Author:    input.Author,
		Body:      input.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Append(r.Context(), comment); err != nil {
		s.logger.Error("storing comment failed", zap.String("post_id", postID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("comment stored", zap.String("post_id", postID), zap.String("id", comment.ID))
	s.respondJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.mailer == nil {
		s.respondError(w, http.StatusServiceUnavailable, "contact form not configured")
		return
	}
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := msg.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.mailer.Send(r.Context(), &msg); err != nil {
		s.logger.Error("contact relay failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, "failed to deliver message")
		return
	}
	s.logger.Debug("contact message relayed", zap.String("from", msg.Email))
	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes {error, message}. The message is the underlying error
// text, exposed unsanitized; existing clients depend on that shape.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
