// Package scoring computes semantic similarity between resume and
// job-requirement texts.
package scoring

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/semaphore"
)

// Embedder generates embedding vectors from text.
// Implementations can use Gemini, OpenAI, Cohere, Ollama, etc.
type Embedder interface {
	// EmbedBatch generates one vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Scorer computes cosine similarity between a resume and a job
// description. One Scorer is shared process-wide; the semaphore bounds
// how many embedding calls run at once so a burst of uploads cannot
// starve the rest of the server.
type Scorer struct {
	embedder Embedder
	sem      *semaphore.Weighted
}

// NewScorer creates a scorer allowing at most maxConcurrent embedding
// calls in flight.
func NewScorer(embedder Embedder, maxConcurrent int) *Scorer {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scorer{
		embedder: embedder,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Score embeds both texts and returns their cosine similarity rounded
// to two decimal places, in [-1, 1]. Acquiring a slot honors ctx, so an
// aborted request stops waiting in line.
func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) (float64, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return 0, fmt.Errorf("failed to acquire scoring slot: %w", err)
	}
	defer s.sem.Release(1)

	vectors, err := s.embedder.EmbedBatch(ctx, []string{resumeText, jobText})
	if err != nil {
		return 0, fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("embedder returned %d vectors, want 2", len(vectors))
	}

	return Round2(Cosine(vectors[0], vectors[1])), nil
}

// Cosine returns the cosine similarity of two vectors. Mismatched
// lengths or zero-magnitude vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
