// Package feedback turns resume and job texts into qualitative feedback
// via the external language model.
package feedback

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/camila/resume-screener/internal/llm"
)

// System roles are fixed; the variability lives in the prompt body.
const (
	matchSystemRole  = "You are an expert recruiting assistant."
	careerSystemRole = "You are an expert resume advisor."
)

//go:embed prompts/match_feedback.md
var matchPromptRaw string

//go:embed prompts/career_feedback.md
var careerPromptRaw string

// Parsed once at package init; reused on every call.
var (
	matchTemplate  = template.Must(template.New("match_feedback").Parse(matchPromptRaw))
	careerTemplate = template.Must(template.New("career_feedback").Parse(careerPromptRaw))
)

// MatchInput carries the fields embedded into the match-feedback prompt.
type MatchInput struct {
	ClientName string
	Functions  string
	Profile    string
	Resume     string
}

// CareerInput carries the fields embedded into the career-feedback
// prompt used by the metered single-tenant endpoint.
type CareerInput struct {
	Profession string
	Resume     string
}

// Generator produces feedback text through an llm.Client.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a feedback generator.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// MatchFeedback evaluates a resume against a client's job requirements.
// The model's text output is returned unmodified.
func (g *Generator) MatchFeedback(ctx context.Context, in MatchInput) (string, error) {
	return g.generate(ctx, matchSystemRole, matchTemplate, in)
}

// CareerFeedback reviews a resume against a profession.
func (g *Generator) CareerFeedback(ctx context.Context, in CareerInput) (string, error) {
	return g.generate(ctx, careerSystemRole, careerTemplate, in)
}

func (g *Generator) generate(ctx context.Context, system string, tmpl *template.Template, data any) (string, error) {
	prompt, err := render(tmpl, data)
	if err != nil {
		return "", err
	}

	text, err := g.client.GenerateContent(ctx, system, prompt)
	if err != nil {
		return "", fmt.Errorf("feedback generation failed: %w", err)
	}
	// an empty answer is a provider failure, not valid feedback
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("feedback generation returned empty output")
	}

	return text, nil
}

// render executes a prompt template. Exposed to tests via the package so
// prompt determinism can be checked without a live client.
func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
