package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/camila/resume-screener/internal/analysis"
	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/schemas"
	"github.com/camila/resume-screener/internal/server/middleware"
	"github.com/camila/resume-screener/internal/types"
)

// authedCandidate resolves the request's session subject to an onboarded
// candidate. A valid session without a profile row is answered 404.
func (s *Server) authedCandidate(w http.ResponseWriter, r *http.Request) *db.Candidate {
	subject, err := middleware.GetSubject(r)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "user not found")
		return nil
	}

	candidate, err := s.store.GetCandidateByExternalID(r.Context(), subject)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return nil
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return nil
	}
	return candidate
}

func (s *Server) handleCandidateFeedback(w http.ResponseWriter, r *http.Request) {
	candidate := s.authedCandidate(w, r)
	if candidate == nil {
		return
	}

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

	form := types.FeedbackForm{
		Profession: strings.TrimSpace(r.FormValue("profession")),
		FileName:   header.Filename,
	}
	if err := form.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "profession is required")
		return
	}

	text, err := s.pipeline.CandidateFeedback(r.Context(), analysis.CandidateFeedbackRequest{
		File:        file,
		FileSize:    header.Size,
		FileName:    form.FileName,
		Profession:  form.Profession,
		CandidateID: candidate.ID,
	})
	if err != nil {
		// 5xx details stay server-side; clients get a generic message
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("career feedback failed", zap.Error(err))
			s.errorResponse(w, status, "feedback generation failed")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"feedback": text})
}

type usageUpgradeRequest struct {
	AdditionalUses int `json:"additional_uses"`
}

func (s *Server) handleUsageUpgrade(w http.ResponseWriter, r *http.Request) {
	candidate := s.authedCandidate(w, r)
	if candidate == nil {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateBody(schemas.UsageUpgrade, body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req usageUpgradeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newLimit, err := s.store.IncreaseUsageLimit(r.Context(), candidate.ID, req.AdditionalUses)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to upgrade usage limit")
		return
	}

	usage, err := s.store.GetUsage(r.Context(), candidate.ID)
	if err != nil || usage == nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{"usage_limit": newLimit})
		return
	}

	s.jsonResponse(w, http.StatusOK, usage)
}
