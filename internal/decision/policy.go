// Package decision maps match scores to discrete outcome labels.
package decision

import (
	"fmt"

	"github.com/camila/resume-screener/internal/config"
)

// Outcome labels.
const (
	LabelHigh        = "High score"
	LabelAverage     = "Average score"
	LabelLow         = "Low score"
	LabelSelected    = "Selected"
	LabelNotSelected = "Not selected"
)

// Policy maps a match score to a decision label. Implementations are
// pure functions of the score.
type Policy interface {
	Decide(score float64) string
}

// NewPolicy builds the configured policy.
func NewPolicy(cfg *config.DecisionConfig) (Policy, error) {
	switch cfg.Policy {
	case config.PolicyThreeBand:
		return ThreeBand{High: cfg.High, Average: cfg.Average}, nil
	case config.PolicySingle:
		return SingleThreshold{Select: cfg.Select}, nil
	default:
		return nil, fmt.Errorf("unknown decision policy: %q", cfg.Policy)
	}
}

// ThreeBand buckets scores into high/average/low. Boundary scores land
// on the favorable side.
type ThreeBand struct {
	High    float64
	Average float64
}

// Decide implements Policy.
func (p ThreeBand) Decide(score float64) string {
	switch {
	case score >= p.High:
		return LabelHigh
	case score >= p.Average:
		return LabelAverage
	default:
		return LabelLow
	}
}

// SingleThreshold is the legacy selected/not-selected policy.
type SingleThreshold struct {
	Select float64
}

// Decide implements Policy.
func (p SingleThreshold) Decide(score float64) string {
	if score >= p.Select {
		return LabelSelected
	}
	return LabelNotSelected
}
