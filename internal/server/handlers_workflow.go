package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	if err := s.controller.Advance(r.Context(), sess); err != nil {
		s.logger.Warn("advance failed",
			zap.String("session", sess.ID().String()),
			zap.String("phase", sess.Phase().String()),
			zap.Error(err),
		)
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}
	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	if err := s.controller.Back(sess); err != nil {
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}
	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	s.controller.Reset(sess)
	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}

type refineRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Feedback text is required")
		return
	}

	if err := s.controller.Refine(r.Context(), sess, req.Feedback); err != nil {
		s.logger.Warn("refine failed",
			zap.String("session", sess.ID().String()),
			zap.Error(err),
		)
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}
	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}
