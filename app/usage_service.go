package app

import (
	"context"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/internal/analysis"
	"rpascope/internal/logging"
	"rpascope/ports"
)

// UsageService orchestrates variable/argument usage analysis
type UsageService struct {
	structures ports.StructureStore
	analyzer   *analysis.UsageAnalyzer
	cache      ports.ReviewCache
	logger     *logging.Logger
}

// NewUsageService creates a usage service
func NewUsageService(structures ports.StructureStore, analyzer *analysis.UsageAnalyzer, cache ports.ReviewCache, logger *logging.Logger) *UsageService {
	return &UsageService{structures: structures, analyzer: analyzer, cache: cache, logger: logger}
}

// RunVariableAnalysis analyzes variable/argument usage for one workflow. A
// fresh run always replaces the cached report for the usage kind.
func (s *UsageService) RunVariableAnalysis(ctx context.Context, workflowID core.WorkflowID) (*report.UsageReport, bool, error) {
	structure, err := s.structures.Get(ctx, workflowID)
	if err != nil {
		return nil, false, err
	}

	key := ports.CacheKey{WorkflowID: workflowID, Kind: report.KindUsage}
	if s.cache != nil {
		if value, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			if rep, ok := value.(*report.UsageReport); ok {
				return rep, true, nil
			}
		} else if err != nil {
			s.logger.Warn("review cache unavailable, recomputing: %v", err)
		}
	}

	rep := s.analyzer.Analyze(structure)
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, key); err == nil {
			if err := s.cache.Put(ctx, key, &rep); err != nil {
				s.logger.Warn("failed to cache usage report: %v", err)
			}
		} else {
			s.logger.Warn("failed to invalidate cached usage report: %v", err)
		}
	}
	return &rep, false, nil
}
