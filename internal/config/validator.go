package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration values and returns an error describing every
// invalid field at once.
func (c Config) Validate() error {
	var problems []string

	if c.Iterations < 1 {
		problems = append(problems, fmt.Sprintf("iterations must be at least 1, got: %d", c.Iterations))
	}
	if c.HeadfulIterations < 1 {
		problems = append(problems, fmt.Sprintf("headful_iterations must be at least 1, got: %d", c.HeadfulIterations))
	}
	if c.OutputDir == "" {
		problems = append(problems, "output_dir must not be empty")
	}
	if c.RegressionThresholdPct <= 0 {
		problems = append(problems, fmt.Sprintf("regression_threshold_pct must be positive, got: %v", c.RegressionThresholdPct))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
