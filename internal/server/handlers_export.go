package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/webjhones/requirements-intake/internal/export"
	"github.com/webjhones/requirements-intake/internal/intake"
	"github.com/webjhones/requirements-intake/internal/summary"
	"github.com/webjhones/requirements-intake/internal/types"
)

// completedRecord returns a copy of the summary of a completed session.
// The session lock is released before any rendering starts.
func (s *Server) completedRecord(w http.ResponseWriter, r *http.Request) (summary.Record, bool) {
	var (
		rec summary.Record
		ok  bool
	)
	s.withSession(w, r, func(e *sessionEntry) {
		if e.record == nil {
			s.failure(w, r, intake.ErrWrongStage)
			return
		}
		rec, ok = *e.record, true
	})
	return rec, ok
}

// handleSummary returns the composed summary of a completed session.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *sessionEntry) {
		if e.record == nil {
			s.failure(w, r, intake.ErrWrongStage)
			return
		}
		s.jsonResponse(w, http.StatusOK, types.SummaryResponse{
			Summary:      *e.record,
			SubmissionID: e.submissionID,
			Notice:       e.notice,
		})
	})
}

// handleSummaryHTML renders the printable summary page.
func (s *Server) handleSummaryHTML(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.completedRecord(w, r)
	if !ok {
		return
	}
	html, err := s.renderer.HTML(rec)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleExportPDF prints the summary and returns it as a download.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.completedRecord(w, r)
	if !ok {
		return
	}
	pdf, err := s.exporter.PDF(r.Context(), rec)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.PDFFilename(rec)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleExportMailto returns the mailto link for the summary.
func (s *Server) handleExportMailto(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.completedRecord(w, r)
	if !ok {
		return
	}
	link, err := s.exporter.Mailto(rec)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.LinkResponse{URL: link})
}

// handleExportWhatsApp returns the WhatsApp deep link for the summary.
func (s *Server) handleExportWhatsApp(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.completedRecord(w, r)
	if !ok {
		return
	}
	link, err := s.exporter.WhatsApp(rec)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.LinkResponse{URL: link})
}

// handleExportBundle runs every export channel. Failed channels are listed
// in the bundle notices.
func (s *Server) handleExportBundle(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.completedRecord(w, r)
	if !ok {
		return
	}
	bundle, err := s.exporter.Bundle(r.Context(), rec)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	for channel, notice := range bundle.Notices {
		log.Warn().Str("channel", string(channel)).Str("service_id", rec.Service.ID).Msg(notice)
	}
	s.jsonResponse(w, http.StatusOK, bundle)
}
