package analysis

import (
	"rpascope/domain/report"
	"rpascope/internal/config"
)

// activitiesPerHandler is how many activities one exception handling scope is
// considered to cover when computing handler coverage.
const activitiesPerHandler = 10

// ComplexityScorer maps structural metrics to a numeric complexity score and
// a discrete level. Thresholds and formula factors come from configuration so
// tenants can recalibrate without code changes.
type ComplexityScorer struct {
	cfg config.ComplexityConfig
}

// NewComplexityScorer creates a scorer from configuration
func NewComplexityScorer(cfg config.ComplexityConfig) *ComplexityScorer {
	return &ComplexityScorer{cfg: cfg}
}

// Score computes the deterministic complexity score:
//
//	score = activityFactor*count + depthFactor*maxDepth + handlerPenalty*uncovered
//
// where uncovered is the fraction of the workflow not covered by exception
// handlers (each handler covers up to activitiesPerHandler activities).
// Workflows with zero handlers relative to their size score strictly higher.
func (s *ComplexityScorer) Score(metrics report.StructuralMetrics) report.ComplexityResult {
	if metrics.ActivityCount == 0 {
		return report.ComplexityResult{Score: 0, Level: s.levelFor(0)}
	}

	uncovered := 1.0
	if metrics.ExceptionHandlerCount > 0 {
		covered := float64(metrics.ExceptionHandlerCount*activitiesPerHandler) / float64(metrics.ActivityCount)
		if covered > 1 {
			covered = 1
		}
		uncovered = 1 - covered
	}

	score := s.cfg.ActivityFactor*float64(metrics.ActivityCount) +
		s.cfg.DepthFactor*float64(metrics.MaxNestingDepth) +
		s.cfg.HandlerPenalty*uncovered

	return report.ComplexityResult{Score: score, Level: s.levelFor(score)}
}

// levelFor bands a score into a level; the banding is monotonic
// non-decreasing in the score by construction.
func (s *ComplexityScorer) levelFor(score float64) report.ComplexityLevel {
	switch {
	case score <= s.cfg.LowMax:
		return report.ComplexityLow
	case score <= s.cfg.MediumMax:
		return report.ComplexityMedium
	case score <= s.cfg.HighMax:
		return report.ComplexityHigh
	default:
		return report.ComplexityCritical
	}
}
