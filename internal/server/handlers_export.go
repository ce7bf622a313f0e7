package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-aligner/internal/export"
	"github.com/jonathan/resume-aligner/internal/types"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	kind := export.Kind(strings.ToLower(r.PathValue("kind")))
	if !kind.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Export format must be pdf, docx or txt")
		return
	}

	if sess.Phase() != types.PhasePolish {
		s.errorResponse(w, http.StatusConflict, "No polished resume to export yet")
		return
	}
	doc := sess.Resume()
	if doc == nil || doc.Content == "" {
		s.errorResponse(w, http.StatusConflict, "No polished resume to export yet")
		return
	}
	lang := sess.Language()

	switch kind {
	case export.KindText:
		serveDownload(w, kind.ContentType(), export.Filename(kind, lang), []byte(export.PlainText(doc.Content)))

	case export.KindDocx:
		data, err := export.Docx(doc.Content)
		if err != nil {
			s.logger.Error("docx export failed", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "Failed to build document")
			return
		}
		serveDownload(w, kind.ContentType(), export.Filename(kind, lang), data)

	case export.KindPDF:
		data, err := export.PDF(r.Context(), doc.Content, string(lang), s.pdfTimeout)
		if errors.Is(err, export.ErrRendererUnavailable) {
			// No browser on the host: hand back the printable page so
			// the client can use its native print path.
			s.logger.Warn("pdf renderer unavailable, serving printable html", zap.Error(err))
			html, herr := export.HTML(doc.Content, string(lang))
			if herr != nil {
				s.errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
				return
			}
			w.Header().Set("X-Pdf-Fallback", "html")
			serveDownload(w, "text/html; charset=utf-8",
				fmt.Sprintf("aligned-resume-%s.html", lang), []byte(html))
			return
		}
		if err != nil {
			s.logger.Error("pdf export failed", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
			return
		}
		serveDownload(w, kind.ContentType(), export.Filename(kind, lang), data)
	}
}

func serveDownload(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
