package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/schemas"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

type createJobRequest struct {
	ClientName string   `json:"client_name"`
	Title      string   `json:"title"`
	Profile    string   `json:"profile"`
	Functions  []string `json:"functions"`
	Skills     []string `json:"skills"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateBody(schemas.JobCreate, body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req createJobRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.store.CreateJobBundle(r.Context(), db.JobBundle{
		ClientName: req.ClientName,
		Title:      req.Title,
		Profile:    req.Profile,
		Functions:  req.Functions,
		Skills:     req.Skills,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, result)
}

func (s *Server) handleListJobsByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := s.store.GetClient(r.Context(), clientID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load client")
		return
	}
	if client == nil {
		s.errorResponse(w, http.StatusNotFound, "client not found")
		return
	}

	jobs, err := s.store.ListJobsByClient(r.Context(), clientID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"client": client,
		"jobs":   jobs,
		"count":  len(jobs),
	})
}
