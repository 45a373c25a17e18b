package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/schemas"
)

type contactRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// stripHTML reduces submitted text to its plain-text content, dropping
// any markup.
func stripHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(doc.Text())
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateBody(schemas.Contact, body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req contactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact := &db.Contact{
		Name:    stripHTML(req.Name),
		Company: stripHTML(req.Company),
		Email:   strings.TrimSpace(req.Email),
		Message: stripHTML(req.Message),
	}

	// markup-only messages strip down to nothing
	if len(contact.Message) < 10 {
		s.errorResponse(w, http.StatusBadRequest, "message must be at least 10 characters")
		return
	}

	if err := s.store.InsertContact(r.Context(), contact); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save contact")
		return
	}

	// acknowledge first; notification failures never affect the response
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":     contact.ID,
		"status": "received",
	})

	go func(c *db.Contact) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.ContactReceived(ctx, c); err != nil {
			s.logger.Error("contact notification failed",
				zap.Int64("contact_id", c.ID),
				zap.Error(err))
		}
	}(contact)
}
