package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
)

const contentTypeJSON = "application/json; charset=utf-8"

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := s.pools.Languages()
	if err != nil {
		s.logger.Error("failed to list languages", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal", "failed to list languages")
		return
	}
	if langs == nil {
		langs = []string{}
	}

	s.respondJSON(w, http.StatusOK, map[string][]string{"languages": langs})
}

// handleGetPool returns the pool for a language as a bare JSON list.
func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	pool, err := s.pools.Questions(r.Context(), tag)
	switch {
	case errors.Is(err, repository.ErrInvalidLanguage):
		s.respondError(w, http.StatusBadRequest, "invalid_language", err.Error())
		return
	case errors.Is(err, repository.ErrLanguageNotFound):
		s.respondError(w, http.StatusNotFound, "language_not_found", err.Error())
		return
	case err != nil:
		s.logger.Error("failed to load pool",
			zap.String("language", tag),
			zap.Error(err),
		)
		s.respondError(w, http.StatusInternalServerError, "internal", "failed to load questions")
		return
	}

	s.respondJSON(w, http.StatusOK, pool)
}
