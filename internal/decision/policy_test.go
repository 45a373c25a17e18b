package decision

import (
	"testing"

	"github.com/camila/resume-screener/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreeBand_Decide(t *testing.T) {
	policy := ThreeBand{High: 0.60, Average: 0.50}

	tests := []struct {
		score float64
		want  string
	}{
		{-1.0, LabelLow},
		{0.0, LabelLow},
		{0.49, LabelLow},
		{0.50, LabelAverage}, // boundary maps to the favorable side
		{0.59, LabelAverage},
		{0.60, LabelHigh}, // boundary maps to the favorable side
		{0.87, LabelHigh},
		{1.0, LabelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.Decide(tt.score), "score %v", tt.score)
	}
}

func TestSingleThreshold_Decide(t *testing.T) {
	policy := SingleThreshold{Select: 0.70}

	assert.Equal(t, LabelNotSelected, policy.Decide(0.69))
	assert.Equal(t, LabelSelected, policy.Decide(0.70))
	assert.Equal(t, LabelSelected, policy.Decide(1.0))
	assert.Equal(t, LabelNotSelected, policy.Decide(0.0))
}

// favorability orders labels for the monotonicity check
func favorability(label string) int {
	switch label {
	case LabelLow, LabelNotSelected:
		return 0
	case LabelAverage:
		return 1
	case LabelHigh, LabelSelected:
		return 2
	}
	return -1
}

func TestPolicies_MonotonicNonDecreasing(t *testing.T) {
	policies := []Policy{
		ThreeBand{High: 0.60, Average: 0.50},
		SingleThreshold{Select: 0.70},
	}

	for _, policy := range policies {
		prev := -1
		for score := -1.0; score <= 1.0; score += 0.01 {
			fav := favorability(policy.Decide(score))
			require.GreaterOrEqual(t, fav, 0)
			assert.GreaterOrEqual(t, fav, prev, "favorability dropped at score %v", score)
			prev = fav
		}
	}
}

func TestPolicies_Deterministic(t *testing.T) {
	policy := ThreeBand{High: 0.60, Average: 0.50}
	for i := 0; i < 10; i++ {
		assert.Equal(t, LabelHigh, policy.Decide(0.60))
		assert.Equal(t, LabelAverage, policy.Decide(0.50))
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy(&config.DecisionConfig{Policy: config.PolicyThreeBand, High: 0.6, Average: 0.5})
	require.NoError(t, err)
	assert.IsType(t, ThreeBand{}, p)

	p, err = NewPolicy(&config.DecisionConfig{Policy: config.PolicySingle, Select: 0.7})
	require.NoError(t, err)
	assert.IsType(t, SingleThreshold{}, p)

	_, err = NewPolicy(&config.DecisionConfig{Policy: "vibes"})
	assert.Error(t, err)
}
