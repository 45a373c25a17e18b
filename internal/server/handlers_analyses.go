package server

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/camila/resume-screener/internal/analysis"
	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/types"
)

// maxUploadSize bounds resume uploads.
const maxUploadSize = 10 << 20

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	jobID, _ := strconv.ParseInt(r.FormValue("job_id"), 10, 64)
	clientID, _ := strconv.ParseInt(r.FormValue("client_id"), 10, 64)

	form := types.AnalyzeForm{
		JobID:         jobID,
		ClientID:      clientID,
		CandidateName: strings.TrimSpace(r.FormValue("candidate_name")),
		FileName:      header.Filename,
	}
	if err := form.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_id, client_id and candidate_name are required")
		return
	}

	result, err := s.pipeline.Analyze(r.Context(), analysis.AnalyzeRequest{
		File:          file,
		FileSize:      header.Size,
		FileName:      form.FileName,
		ClientID:      form.ClientID,
		JobID:         form.JobID,
		CandidateName: form.CandidateName,
	})
	if err != nil {
		// 5xx details stay server-side; clients get a generic message
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("analysis failed", zap.Error(err))
			s.errorResponse(w, status, "analysis failed")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := db.AnalysisFilter{
		Name:     strings.TrimSpace(q.Get("name")),
		JobTitle: strings.TrimSpace(q.Get("job_title")),
		OrderBy:  strings.TrimSpace(q.Get("order_by")),
	}

	if filter.OrderBy != "" && !db.IsSortable(filter.OrderBy) {
		s.errorResponse(w, http.StatusBadRequest,
			"unsupported order_by field; one of: "+strings.Join(db.SortableFields(), ", "))
		return
	}

	if raw := q.Get("ascending"); raw != "" {
		ascending, err := strconv.ParseBool(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "ascending must be a boolean")
			return
		}
		filter.Ascending = ascending
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	analyses, err := s.store.ListAnalyses(r.Context(), filter)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analyses": analyses,
		"count":    len(analyses),
	})
}
