package service

import (
	"fmt"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// Default tier thresholds. Each bound is inclusive.
const (
	DefaultTopThreshold = 0.85
	DefaultMidThreshold = 0.60
)

// Thresholds maps a score ratio to a tier.
type Thresholds struct {
	Top float64
	Mid float64
}

// DefaultThresholds returns the standard 0.85 / 0.60 thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Top: DefaultTopThreshold, Mid: DefaultMidThreshold}
}

// Validate checks that 0 <= Mid <= Top <= 1.
func (t Thresholds) Validate() error {
	if t.Mid < 0 || t.Top > 1 || t.Mid > t.Top {
		return fmt.Errorf("invalid tier thresholds: top=%.2f mid=%.2f", t.Top, t.Mid)
	}
	return nil
}

// Classify returns the tier for score out of total.
// A zero total has no ratio and is reported as TierNoData.
func (t Thresholds) Classify(score, total int) entities.Tier {
	if total <= 0 {
		return entities.TierNoData
	}

	ratio := float64(score) / float64(total)
	switch {
	case ratio >= t.Top:
		return entities.TierTop
	case ratio >= t.Mid:
		return entities.TierMid
	default:
		return entities.TierEntry
	}
}
