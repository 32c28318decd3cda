package app

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"rpascope/domain/core"
	"rpascope/domain/report"
)

// BatchService fans out reviews over many workflows. Each analysis operates
// on an independently owned structure, so runs need no coordination beyond
// the bounded worker group; the cache serializes per-key writes itself.
type BatchService struct {
	reviews *ReviewService
	limit   int
}

// NewBatchService creates a batch service with a worker bound; a limit of
// zero defaults to GOMAXPROCS
func NewBatchService(reviews *ReviewService, limit int) *BatchService {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &BatchService{reviews: reviews, limit: limit}
}

// BatchResult pairs one workflow with its review outcome
type BatchResult struct {
	WorkflowID core.WorkflowID        `json:"workflow_id"`
	Report     *report.AnalysisReport `json:"report,omitempty"`
	Cached     bool                   `json:"cached"`
	Err        error                  `json:"-"`
}

// ReviewAll reviews every given workflow concurrently. Per-workflow failures
// are collected in the results; only context cancellation aborts the batch.
func (s *BatchService) ReviewAll(ctx context.Context, ids []core.WorkflowID) ([]BatchResult, error) {
	results := make([]BatchResult, len(ids))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, id := range ids {
		g.Go(func() error {
			rep, cached, err := s.reviews.RunCodeReview(ctx, id, "")
			mu.Lock()
			results[i] = BatchResult{WorkflowID: id, Report: rep, Cached: cached, Err: err}
			mu.Unlock()
			// One workflow's failure never affects another's analysis.
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
