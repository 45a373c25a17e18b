package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/schemas"
	"github.com/camila/resume-screener/internal/server/middleware"
)

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"`
	Country   string `json:"country"`
	LevelID   int64  `json:"level_id"`
}

func parseBirthday(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.GetSubject(r)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "user not found")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateBody(schemas.ProfileCreate, body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req profileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	birthday, ok := parseBirthday(req.Birthday)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "birthday must be YYYY-MM-DD")
		return
	}

	// level_id is mandatory and must reference an existing level; the
	// candidates table holds a foreign key on it
	level, err := s.store.GetLevel(r.Context(), req.LevelID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load level")
		return
	}
	if level == nil {
		s.errorResponse(w, http.StatusBadRequest, "unknown level_id")
		return
	}

	existing, err := s.store.GetCandidateByExternalID(r.Context(), subject)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if existing != nil {
		s.errorResponse(w, http.StatusConflict, "profile already exists")
		return
	}

	candidate := &db.Candidate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Birthday:       birthday,
		Country:        req.Country,
		LevelID:        req.LevelID,
		ExternalUserID: subject,
	}

	id, err := s.store.CreateCandidate(r.Context(), candidate)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create profile")
		return
	}
	candidate.ID = id

	// open the metered endpoints for the new candidate
	if err := s.store.EnsureUsage(r.Context(), id, s.defaultUsageLimit); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to initialize usage")
		return
	}

	s.jsonResponse(w, http.StatusCreated, candidate)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	candidate := s.authedCandidate(w, r)
	if candidate == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	// candidates may only touch their own profile
	if id != candidate.ID {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateBody(schemas.ProfileUpdate, body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req profileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FirstName != "" {
		candidate.FirstName = req.FirstName
	}
	if req.LastName != "" {
		candidate.LastName = req.LastName
	}
	if req.Country != "" {
		candidate.Country = req.Country
	}
	if req.Birthday != "" {
		birthday, ok := parseBirthday(req.Birthday)
		if !ok {
			s.errorResponse(w, http.StatusBadRequest, "birthday must be YYYY-MM-DD")
			return
		}
		candidate.Birthday = birthday
	}
	if req.LevelID != 0 {
		level, err := s.store.GetLevel(r.Context(), req.LevelID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to load level")
			return
		}
		if level == nil {
			s.errorResponse(w, http.StatusBadRequest, "unknown level_id")
			return
		}
		candidate.LevelID = req.LevelID
	}

	if err := s.store.UpdateCandidate(r.Context(), candidate); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	candidate := s.authedCandidate(w, r)
	if candidate == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	if id != candidate.ID {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}

	if err := s.store.DeleteCandidate(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.store.ListLevels(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list levels")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"levels": levels,
		"count":  len(levels),
	})
}
