// Package app wires the pure engines to the stores and cache, exposing the
// operations callers consume (HTTP layer, CLI).
package app

import (
	"context"
	"fmt"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/rules"
	"rpascope/domain/workflow"
	"rpascope/internal/analysis"
	"rpascope/internal/logging"
	ruleengine "rpascope/internal/rules"
	"rpascope/ports"
)

// ReviewService orchestrates code reviews: metrics extraction, complexity
// scoring and rule evaluation, fronted by the review cache.
type ReviewService struct {
	structures ports.StructureStore
	ruleStore  ports.RuleStore
	engine     *ruleengine.Engine
	scorer     *analysis.ComplexityScorer
	cache      ports.ReviewCache
	logger     *logging.Logger
}

// NewReviewService creates a review service. The cache may be nil, in which
// case every request recomputes.
func NewReviewService(
	structures ports.StructureStore,
	ruleStore ports.RuleStore,
	engine *ruleengine.Engine,
	scorer *analysis.ComplexityScorer,
	cache ports.ReviewCache,
	logger *logging.Logger,
) *ReviewService {
	return &ReviewService{
		structures: structures,
		ruleStore:  ruleStore,
		engine:     engine,
		scorer:     scorer,
		cache:      cache,
		logger:     logger,
	}
}

// RunCodeReview analyzes one workflow. The cache is consulted first: a hit
// is returned only when its ruleset fingerprint still matches the active
// ruleset, and the returned flag tells the caller whether the result was
// cached or freshly computed. A fresh run replaces the cached entry
// wholesale. Cache failures degrade to an uncached run; they never fail the
// request.
func (s *ReviewService) RunCodeReview(ctx context.Context, workflowID core.WorkflowID, platform workflow.Platform) (*report.AnalysisReport, bool, error) {
	structure, err := s.loadStructure(ctx, workflowID, platform)
	if err != nil {
		return nil, false, err
	}

	activeRules, err := s.ruleStore.List(ctx, ports.RuleFilter{Platform: "", ActiveOnly: true})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load active rules: %w", err)
	}
	rulesetHash := rulesetFingerprint(activeRules)

	key := ports.CacheKey{WorkflowID: workflowID, Kind: report.KindAnalysis}
	if cached := s.cachedAnalysis(ctx, key, rulesetHash); cached != nil {
		return cached, true, nil
	}

	rep := s.analyze(structure, activeRules, rulesetHash)
	s.storeInCache(ctx, key, rep)
	return rep, false, nil
}

// GetCachedReview returns the cached analysis report without running
// anything; a miss is a not-found error.
func (s *ReviewService) GetCachedReview(ctx context.Context, workflowID core.WorkflowID) (*report.AnalysisReport, error) {
	if s.cache == nil {
		return nil, core.NewNotFoundError("cached review", workflowID.String())
	}
	key := ports.CacheKey{WorkflowID: workflowID, Kind: report.KindAnalysis}
	value, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("review cache unavailable: %v", err)
		return nil, core.NewNotFoundError("cached review", workflowID.String())
	}
	if !hit {
		return nil, core.NewNotFoundError("cached review", workflowID.String())
	}
	rep, ok := value.(*report.AnalysisReport)
	if !ok {
		return nil, core.NewNotFoundError("cached review", workflowID.String())
	}
	return rep, nil
}

// Invalidate drops the cached analysis for a workflow
func (s *ReviewService) Invalidate(ctx context.Context, workflowID core.WorkflowID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, ports.CacheKey{WorkflowID: workflowID, Kind: report.KindAnalysis})
}

func (s *ReviewService) analyze(structure *workflow.Structure, activeRules []rules.Rule, rulesetHash core.RulesetHash) *report.AnalysisReport {
	metrics := analysis.ExtractMetrics(structure)
	evaluation := s.engine.Evaluate(structure, metrics, activeRules)

	return &report.AnalysisReport{
		ReportID:       core.ReportID(core.NewID()),
		WorkflowID:     structure.WorkflowID,
		ReviewedAt:     core.Now(),
		QualityScore:   evaluation.QualityScore,
		QualityGrade:   evaluation.QualityGrade,
		Findings:       evaluation.Findings,
		CategoryScores: evaluation.CategoryScores,
		Metrics:        metrics,
		Complexity:     s.scorer.Score(metrics),
		RulesetHash:    rulesetHash,
		Diagnostics:    evaluation.Diagnostics,
	}
}

func (s *ReviewService) loadStructure(ctx context.Context, workflowID core.WorkflowID, platform workflow.Platform) (*workflow.Structure, error) {
	structure, err := s.structures.Get(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if platform != "" && structure.Platform != platform {
		return nil, fmt.Errorf("workflow %s is a %s workflow, not %s",
			workflowID, structure.Platform, platform)
	}
	return structure, nil
}

// cachedAnalysis returns the cached report when it exists and its ruleset
// fingerprint is still current
func (s *ReviewService) cachedAnalysis(ctx context.Context, key ports.CacheKey, rulesetHash core.RulesetHash) *report.AnalysisReport {
	if s.cache == nil {
		return nil
	}
	value, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("review cache unavailable, recomputing: %v", err)
		return nil
	}
	if !hit {
		return nil
	}
	rep, ok := value.(*report.AnalysisReport)
	if !ok || rep.RulesetHash != rulesetHash {
		return nil
	}
	return rep
}

func (s *ReviewService) storeInCache(ctx context.Context, key ports.CacheKey, rep *report.AnalysisReport) {
	if s.cache == nil {
		return
	}
	// Invalidate-then-put so a prior entry can never survive a re-run.
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate cached review: %v", err)
		return
	}
	if err := s.cache.Put(ctx, key, rep); err != nil {
		s.logger.Warn("failed to cache review: %v", err)
	}
}

// rulesetFingerprint hashes the IDs and versions of the active rule set
func rulesetFingerprint(activeRules []rules.Rule) core.RulesetHash {
	versions := make(map[string]int, len(activeRules))
	for _, r := range activeRules {
		versions[r.RuleID.String()] = r.Version
	}
	return core.ComputeRulesetHash(versions)
}
