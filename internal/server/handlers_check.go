package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/policy-card/internal/card"
	"github.com/jonathan/policy-card/internal/summary"
)

// checkRequest is the body for POST /check and POST /check/stream.
type checkRequest struct {
	URL string `json:"url"`
}

// handleCheck runs the full pipeline for a URL and returns the card.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	result, err := s.checker.Check(r.Context(), req.URL)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL).Msg("check failed")
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleCheckStream runs the pipeline while streaming stage events over SSE.
func (s *Server) handleCheckStream(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.checker.CheckWithProgress(r.Context(), req.URL, func(stage string, data map[string]any) {
		if data == nil {
			data = map[string]any{}
		}
		_ = sse.WriteEvent(stage, data)
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	_ = sse.WriteEvent("card", result)
	sse.WriteComplete(result.Domain)
}

// saveCardRequest is the body for POST /cards.
type saveCardRequest struct {
	Domain string              `json:"domain"`
	Card   *summary.PolicyCard `json:"card"`
}

// handleSaveCard stores a card for sharing and returns its ID.
func (s *Server) handleSaveCard(w http.ResponseWriter, r *http.Request) {
	var req saveCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Card == nil {
		s.errorResponse(w, http.StatusBadRequest, "card is required")
		return
	}

	stored := s.cards.Save(req.Domain, req.Card)
	s.jsonResponse(w, http.StatusCreated, stored)
}

// handleGetCard fetches a previously shared card.
func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid card id")
		return
	}

	stored, err := s.cards.Get(id)
	if err != nil {
		if errors.Is(err, card.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "card not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, stored)
}
