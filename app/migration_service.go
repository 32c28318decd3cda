package app

import (
	"context"
	"fmt"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/workflow"
	"rpascope/internal/logging"
	"rpascope/internal/migration"
	"rpascope/ports"
)

// MigrationService orchestrates migration-compatibility analysis
type MigrationService struct {
	structures ports.StructureStore
	engine     *migration.Engine
	cache      ports.ReviewCache
	logger     *logging.Logger
}

// NewMigrationService creates a migration service
func NewMigrationService(structures ports.StructureStore, engine *migration.Engine, cache ports.ReviewCache, logger *logging.Logger) *MigrationService {
	return &MigrationService{structures: structures, engine: engine, cache: cache, logger: logger}
}

// RunMigrationAnalysis maps one workflow onto a target platform. The cached
// report is reused when it matches the requested platform pair; otherwise a
// fresh run replaces it.
func (s *MigrationService) RunMigrationAnalysis(ctx context.Context, workflowID core.WorkflowID, source, target workflow.Platform) (*report.MigrationReport, bool, error) {
	structure, err := s.structures.Get(ctx, workflowID)
	if err != nil {
		return nil, false, err
	}
	if structure.Platform != source {
		return nil, false, fmt.Errorf("workflow %s is a %s workflow; cannot migrate it as %s",
			workflowID, structure.Platform, source)
	}

	key := ports.CacheKey{WorkflowID: workflowID, Kind: report.KindMigration}
	if cached := s.cachedMigration(ctx, key, source, target); cached != nil {
		return cached, true, nil
	}

	rep, err := s.engine.MapActivities(structure, source, target)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, key); err == nil {
			if err := s.cache.Put(ctx, key, rep); err != nil {
				s.logger.Warn("failed to cache migration report: %v", err)
			}
		} else {
			s.logger.Warn("failed to invalidate cached migration report: %v", err)
		}
	}
	return rep, false, nil
}

func (s *MigrationService) cachedMigration(ctx context.Context, key ports.CacheKey, source, target workflow.Platform) *report.MigrationReport {
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
	rep, ok := value.(*report.MigrationReport)
	if !ok || rep.SourcePlatform != source || rep.TargetPlatform != target {
		return nil
	}
	return rep
}
