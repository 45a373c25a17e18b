// Package config provides environment-driven configuration for the
// resume screening backend.
package config

import "fmt"

// Decision policy names.
const (
	PolicyThreeBand = "three-band"
	PolicySingle    = "single"
)

// DecisionConfig holds the thresholds that map a match score to a
// decision label. Thresholds are configuration, not constants baked into
// the policy code.
type DecisionConfig struct {
	Policy string

	// three-band thresholds
	High    float64
	Average float64

	// single-threshold (legacy) cutoff
	Select float64
}

// NewDecisionConfig creates decision configuration from environment
// variables. It reads DECISION_POLICY (default: three-band),
// DECISION_HIGH (default: 0.60), DECISION_AVERAGE (default: 0.50) and
// DECISION_SELECT (default: 0.70).
func NewDecisionConfig() (*DecisionConfig, error) {
	high, err := envFloat("DECISION_HIGH", 0.60)
	if err != nil {
		return nil, err
	}
	average, err := envFloat("DECISION_AVERAGE", 0.50)
	if err != nil {
		return nil, err
	}
	sel, err := envFloat("DECISION_SELECT", 0.70)
	if err != nil {
		return nil, err
	}

	cfg := &DecisionConfig{
		Policy:  envStr("DECISION_POLICY", PolicyThreeBand),
		High:    high,
		Average: average,
		Select:  sel,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *DecisionConfig) normalize() error {
	if c.Policy != PolicyThreeBand && c.Policy != PolicySingle {
		return fmt.Errorf("unknown DECISION_POLICY: %q", c.Policy)
	}
	if c.High <= c.Average {
		return fmt.Errorf("DECISION_HIGH (%v) must be greater than DECISION_AVERAGE (%v)", c.High, c.Average)
	}
	for name, v := range map[string]float64{
		"DECISION_HIGH":    c.High,
		"DECISION_AVERAGE": c.Average,
		"DECISION_SELECT":  c.Select,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0, 1], got: %v", name, v)
		}
	}
	return nil
}
