// Package analysis orchestrates the resume evaluation pipeline:
// extraction, concurrent scoring and feedback generation, decision and
// persistence.
package analysis

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/camila/resume-screener/internal/db"
	"github.com/camila/resume-screener/internal/decision"
	"github.com/camila/resume-screener/internal/extract"
	"github.com/camila/resume-screener/internal/feedback"
)

// Store is the slice of persistence the pipeline needs.
type Store interface {
	GetClient(ctx context.Context, id int64) (*db.Client, error)
	GetJob(ctx context.Context, id int64) (*db.Job, error)
	GetJobRequirements(ctx context.Context, jobID int64) (*db.JobRequirements, error)
	InsertAnalysis(ctx context.Context, a *db.Analysis) error
	ConsumeUsage(ctx context.Context, candidateID int64) (bool, error)
	ReleaseUsage(ctx context.Context, candidateID int64) error
}

// Scorer computes the resume/job match score.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobText string) (float64, error)
}

// Generator produces qualitative feedback.
type Generator interface {
	MatchFeedback(ctx context.Context, in feedback.MatchInput) (string, error)
	CareerFeedback(ctx context.Context, in feedback.CareerInput) (string, error)
}

// Pipeline wires the evaluation stages together. Constructed once at
// startup; safe for concurrent use.
type Pipeline struct {
	store     Store
	scorer    Scorer
	generator Generator
	policy    decision.Policy
	logger    *zap.Logger
}

// New creates a pipeline.
func New(store Store, scorer Scorer, generator Generator, policy decision.Policy, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     store,
		scorer:    scorer,
		generator: generator,
		policy:    policy,
		logger:    logger,
	}
}

// AnalyzeRequest is one resume evaluation against a client's job.
type AnalyzeRequest struct {
	File          io.ReaderAt
	FileSize      int64
	FileName      string
	ClientID      int64
	JobID         int64
	CandidateName string
}

// Analyze runs the full pipeline and persists the result. The scoring
// and feedback branches have no data dependency on each other and run
// concurrently; both must succeed before a result is produced — there
// is no partial-result path. Cancelling ctx (client disconnect) stops
// both branches.
func (p *Pipeline) Analyze(ctx context.Context, req AnalyzeRequest) (*db.Analysis, error) {
	client, err := p.store.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &ErrClientNotFound{ID: req.ClientID}
	}

	job, err := p.store.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &ErrJobNotFound{ID: req.JobID}
	}

	requirements, err := p.store.GetJobRequirements(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	resumeText, err := p.extractResume(req.File, req.FileSize, req.FileName)
	if err != nil {
		return nil, err
	}

	functionsText := joinOrDefault(requirements.Functions)
	profileText := requirements.Profile
	if profileText == "" {
		profileText = "Not specified"
	}

	p.logger.Debug("resume extracted",
		zap.String("file", req.FileName),
		zap.Int("chars", len(resumeText)))

	var (
		score        float64
		feedbackText string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.scorer.Score(gctx, resumeText, functionsText)
		if err != nil {
			return &UpstreamError{Op: "scoring", Err: err}
		}
		score = s
		return nil
	})
	g.Go(func() error {
		text, err := p.generator.MatchFeedback(gctx, feedback.MatchInput{
			ClientName: client.Name,
			Functions:  functionsText,
			Profile:    profileText,
			Resume:     resumeText,
		})
		if err != nil {
			return &UpstreamError{Op: "feedback generation", Err: err}
		}
		feedbackText = text
		return nil
	})
	if err := g.Wait(); err != nil {
		p.logger.Error("analysis branch failed", zap.Error(err))
		return nil, err
	}

	result := &db.Analysis{
		Name:       req.CandidateName,
		JobTitle:   job.Title,
		MatchScore: score,
		Feedback:   feedbackText,
		Decision:   p.policy.Decide(score),
		FileName:   req.FileName,
	}
	if err := p.store.InsertAnalysis(ctx, result); err != nil {
		return nil, err
	}

	p.logger.Info("analysis completed",
		zap.Int64("job_id", req.JobID),
		zap.Float64("match_score", score),
		zap.String("decision", result.Decision))

	return result, nil
}

// CandidateFeedbackRequest is one metered career-feedback evaluation.
type CandidateFeedbackRequest struct {
	File        io.ReaderAt
	FileSize    int64
	FileName    string
	Profession  string
	CandidateID int64
}

// CandidateFeedback runs the metered single-tenant variant: the gate is
// one atomic conditional increment, consumed before the provider call
// and released again if that call fails.
func (p *Pipeline) CandidateFeedback(ctx context.Context, req CandidateFeedbackRequest) (string, error) {
	if !extract.IsSupported(req.FileName) {
		return "", &ErrUnsupportedFile{Name: req.FileName}
	}

	resumeText, err := p.extractResume(req.File, req.FileSize, req.FileName)
	if err != nil {
		return "", err
	}

	allowed, err := p.store.ConsumeUsage(ctx, req.CandidateID)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", &ErrQuotaExceeded{}
	}

	text, err := p.generator.CareerFeedback(ctx, feedback.CareerInput{
		Profession: req.Profession,
		Resume:     resumeText,
	})
	if err != nil {
		p.logger.Error("career feedback branch failed",
			zap.Int64("candidate_id", req.CandidateID),
			zap.Error(err))
		// give the consumed unit back; the candidate got nothing for it
		if relErr := p.store.ReleaseUsage(context.WithoutCancel(ctx), req.CandidateID); relErr != nil {
			p.logger.Error("failed to release usage after provider error", zap.Error(relErr))
		}
		return "", &UpstreamError{Op: "feedback generation", Err: err}
	}

	return text, nil
}

// extractResume converts the upload to normalized text and applies the
// input gates shared by both entry points.
func (p *Pipeline) extractResume(file io.ReaderAt, size int64, filename string) (string, error) {
	if !extract.IsSupported(filename) {
		return "", &ErrUnsupportedFile{Name: filename}
	}

	text, err := extract.FromUpload(file, size, filename)
	if err != nil {
		return "", &ErrUnreadableFile{Name: filename, Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ErrEmptyResume{}
	}
	return text, nil
}

func joinOrDefault(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}
