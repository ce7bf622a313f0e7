package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/session"
	"github.com/jonathan/resume-aligner/internal/types"
)

// sessionView is the wire representation of one session.
type sessionView struct {
	ID             string                `json:"id"`
	Language       types.Language        `json:"language"`
	Stage          types.Stage           `json:"stage"`
	StageNumber    int                   `json:"stageNumber"`
	Phase          types.Phase           `json:"phase"`
	Busy           bool                  `json:"busy"`
	HasInput       bool                  `json:"hasInput"`
	DialogueActive bool                  `json:"dialogueActive"`
	JobDescription string                `json:"jobDescription,omitempty"`
	Profile        *types.DnaProfile     `json:"profile,omitempty"`
	Fit            *types.FitResult      `json:"fit,omitempty"`
	Resume         *types.ResumeDocument `json:"resume,omitempty"`
	Critique       []types.Finding       `json:"critique,omitempty"`
	RefinementNote string                `json:"refinementNote,omitempty"`
}

func viewOf(sess *session.Session) *sessionView {
	phase := sess.Phase()
	return &sessionView{
		ID:             sess.ID().String(),
		Language:       sess.Language(),
		Stage:          phase.Stage(),
		StageNumber:    int(phase.Stage()),
		Phase:          phase,
		Busy:           sess.Busy(),
		HasInput:       sess.HasInput(),
		DialogueActive: sess.DialogueActive(),
		JobDescription: sess.JobDescription(),
		Profile:        sess.Profile(),
		Fit:            sess.FitResult(),
		Resume:         sess.Resume(),
		Critique:       sess.Critique(),
		RefinementNote: sess.RefinementNote(),
	}
}

// lookup resolves the {id} path value to a live session.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *session.Session {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil
	}
	sess, err := s.store.Get(id)
	if err != nil {
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return nil
	}
	return sess
}

type createSessionRequest struct {
	Language string `json:"language" validate:"required,oneof=en zh"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Language must be \"en\" or \"zh\"")
		return
	}

	sess := s.store.Create(types.Language(req.Language))
	s.jsonResponse(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if err := s.store.Delete(id); err != nil {
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type jobDescriptionRequest struct {
	Text string `json:"text" validate:"required"`
}

func (s *Server) handleSetJobDescription(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	var req jobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Job description text is required")
		return
	}

	if err := sess.SetJobDescription(req.Text); err != nil {
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}
	s.jsonResponse(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	if err := r.ParseMultipartForm(ingestion.MaxDocumentBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A \"document\" file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxDocumentBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	att, err := ingestion.Probe(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}
	if err := ingestion.Verify(att); err != nil {
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}

	if err := sess.AttachDocument(att); err != nil {
		status, msg := httpStatus(err)
		s.errorResponse(w, status, msg)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"filename": att.Filename,
		"mimeType": att.MimeType,
		"size":     len(att.Data),
	})
}

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"utterances": sess.Transcript(),
		"raw":        sess.RawExperience(),
	})
}
