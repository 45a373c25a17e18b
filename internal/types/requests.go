// Package types provides request and response type definitions shared by
// the HTTP layer.
package types

import (
	"github.com/go-playground/validator/v10"
)

// AnalyzeForm represents the multipart form fields of an analysis request.
// The resume file itself travels alongside as the "file" part.
type AnalyzeForm struct {
	JobID         int64  `validate:"required,gt=0"`
	ClientID      int64  `validate:"required,gt=0"`
	CandidateName string `validate:"required,min=1,max=200"`
	FileName      string `validate:"required"`
}

// FeedbackForm represents the multipart form fields of a career-feedback
// request.
type FeedbackForm struct {
	Profession string `validate:"required,min=2,max=200"`
	FileName   string `validate:"required"`
}

// Validate validates the AnalyzeForm using the validator.
func (f *AnalyzeForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// Validate validates the FeedbackForm using the validator.
func (f *FeedbackForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}
