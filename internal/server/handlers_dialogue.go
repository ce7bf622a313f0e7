package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jonathan/resume-aligner/internal/dialogue"
	"github.com/jonathan/resume-aligner/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Cross-origin policy is handled by the CORS middleware.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (s *Server) handleDialogue(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	if sess.Phase() != types.PhaseDiscoveryCapture {
		s.errorResponse(w, http.StatusConflict, "The interview is only available while capturing experience")
		return
	}
	if sess.DialogueActive() {
		s.errorResponse(w, http.StatusConflict, "An interview is already running for this session")
		return
	}
	if s.apiKey == "" {
		s.errorResponse(w, http.StatusServiceUnavailable, "Voice interview is not configured")
		return
	}

	live, err := dialogue.Connect(r.Context(), dialogue.LiveConfig{
		APIKey:   s.apiKey,
		Model:    s.dialogueModel,
		Language: sess.Language(),
	})
	if err != nil {
		s.logger.Error("dialogue connect failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "Could not start the interview, please try again")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		_ = live.Close()
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	bridge := dialogue.NewBridge(conn, live, sess, s.logger)
	if err := bridge.Run(r.Context()); err != nil {
		s.logger.Warn("dialogue ended with error",
			zap.String("session", sess.ID().String()),
			zap.Error(err),
		)
	}
}
