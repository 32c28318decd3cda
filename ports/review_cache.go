package ports

import (
	"context"

	"rpascope/domain/core"
	"rpascope/domain/report"
)

// CacheKey identifies one cached report slot: at most one fresh result is
// retained per (workflow, report kind).
type CacheKey struct {
	WorkflowID core.WorkflowID
	Kind       report.ReportKind
}

// ReviewCache retains the latest report per key. Put always replaces the
// prior entry wholesale, never merges. Get reports whether the value was a
// cache hit; the flag is user-visible ("cached" vs "rerun"). A failing cache
// is an optimization loss, never a correctness dependency: callers must
// proceed uncached on error.
type ReviewCache interface {
	Get(ctx context.Context, key CacheKey) (value interface{}, hit bool, err error)
	Put(ctx context.Context, key CacheKey, value interface{}) error
	Invalidate(ctx context.Context, key CacheKey) error
}
