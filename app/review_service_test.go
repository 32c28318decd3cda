package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpascope/adapters/memory"
	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/rules"
	"rpascope/domain/workflow"
	"rpascope/internal/analysis"
	"rpascope/internal/cache"
	"rpascope/internal/config"
	"rpascope/internal/logging"
	ruleengine "rpascope/internal/rules"
)

func testScoring() config.ScoringConfig {
	return config.ScoringConfig{
		SeverityWeights: map[rules.Severity]float64{
			rules.SeverityCritical: 15,
			rules.SeverityHigh:     10,
			rules.SeverityMajor:    5,
			rules.SeverityMedium:   3,
			rules.SeverityMinor:    2,
			rules.SeverityInfo:     1,
		},
		GradeBands: report.DefaultGradeBands(),
	}
}

func newTestReviewService(t *testing.T) (*ReviewService, *memory.StructureStore, *memory.RuleStore) {
	t.Helper()
	structures := memory.NewStructureStore()
	ruleStore := memory.NewRuleStore(ruleengine.BuiltinRules())
	engine := ruleengine.NewEngine(testScoring(), ruleengine.NewRegistry())
	scorer := analysis.NewComplexityScorer(config.ComplexityConfig{
		LowMax: 50, MediumMax: 100, HighMax: 150,
		ActivityFactor: 1, DepthFactor: 8, HandlerPenalty: 20,
	})
	svc := NewReviewService(structures, ruleStore, engine, scorer, cache.NewMemoryCache(time.Minute), logging.NewDefaultLogger())
	return svc, structures, ruleStore
}

func seedStructure(t *testing.T, structures *memory.StructureStore, id string) core.WorkflowID {
	t.Helper()
	workflowID := core.WorkflowID(id)
	err := structures.Put(context.Background(), &workflow.Structure{
		WorkflowID: workflowID,
		Platform:   workflow.PlatformUiPath,
		Activities: []workflow.ActivityNode{
			{
				TypeName:    "Sequence",
				DisplayName: "MainProcess",
				Children: []workflow.ActivityNode{
					{TypeName: "Assign", DisplayName: "SetTotal"},
					{TypeName: "Click", DisplayName: "OpenDetails"},
				},
			},
		},
	})
	require.NoError(t, err)
	return workflowID
}

// TestRunCodeReviewCaching runs a review twice: the first run computes, the
// second is served from the cache and says so
func TestRunCodeReviewCaching(t *testing.T) {
	ctx := context.Background()
	svc, structures, _ := newTestReviewService(t)
	workflowID := seedStructure(t, structures, "wf-1")

	first, cached, err := svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)
	assert.False(t, cached, "first run must compute")
	assert.Equal(t, workflowID, first.WorkflowID)
	assert.NotEmpty(t, first.RulesetHash)

	second, cached, err := svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)
	assert.True(t, cached, "second run must hit the cache")
	assert.Equal(t, first.ReportID, second.ReportID, "cached run returns the same report")
}

// TestRunCodeReviewRulesetChangeInvalidates tests that changing the active
// ruleset makes the cached report stale
func TestRunCodeReviewRulesetChangeInvalidates(t *testing.T) {
	ctx := context.Background()
	svc, structures, ruleStore := newTestReviewService(t)
	workflowID := seedStructure(t, structures, "wf-1")

	first, _, err := svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)

	// Deactivating a rule changes the active-ruleset fingerprint.
	require.NoError(t, ruleStore.SetActive(ctx, core.RuleID("builtin.missing-try-catch"), false))

	second, cached, err := svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)
	assert.False(t, cached, "stale fingerprint must recompute")
	assert.NotEqual(t, first.RulesetHash, second.RulesetHash)
	assert.NotEqual(t, first.ReportID, second.ReportID)

	// The fresh report replaced the stale entry wholesale.
	third, cached, err := svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, second.ReportID, third.ReportID)
}

// TestRunCodeReviewPlatformMismatch tests the platform guard
func TestRunCodeReviewPlatformMismatch(t *testing.T) {
	ctx := context.Background()
	svc, structures, _ := newTestReviewService(t)
	workflowID := seedStructure(t, structures, "wf-1")

	_, _, err := svc.RunCodeReview(ctx, workflowID, workflow.PlatformBluePrism)
	assert.Error(t, err)
}

// TestRunCodeReviewUnknownWorkflow tests the not-found path
func TestRunCodeReviewUnknownWorkflow(t *testing.T) {
	svc, _, _ := newTestReviewService(t)
	_, _, err := svc.RunCodeReview(context.Background(), core.WorkflowID("wf-ghost"), "")
	assert.True(t, core.IsNotFoundError(err))
}

// TestGetCachedReview tests the read-only cache surface
func TestGetCachedReview(t *testing.T) {
	ctx := context.Background()
	svc, structures, _ := newTestReviewService(t)
	workflowID := seedStructure(t, structures, "wf-1")

	_, err := svc.GetCachedReview(ctx, workflowID)
	assert.True(t, core.IsNotFoundError(err), "miss before any run")

	ran, _, err := svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)

	got, err := svc.GetCachedReview(ctx, workflowID)
	require.NoError(t, err)
	assert.Equal(t, ran.ReportID, got.ReportID)

	require.NoError(t, svc.Invalidate(ctx, workflowID))
	_, err = svc.GetCachedReview(ctx, workflowID)
	assert.True(t, core.IsNotFoundError(err), "miss after invalidation")
}

// TestRunCodeReviewNilCache tests that the service degrades to uncached
// operation without a cache
func TestRunCodeReviewNilCache(t *testing.T) {
	ctx := context.Background()
	structures := memory.NewStructureStore()
	ruleStore := memory.NewRuleStore(ruleengine.BuiltinRules())
	engine := ruleengine.NewEngine(testScoring(), ruleengine.NewRegistry())
	scorer := analysis.NewComplexityScorer(config.ComplexityConfig{
		LowMax: 50, MediumMax: 100, HighMax: 150,
		ActivityFactor: 1, DepthFactor: 8, HandlerPenalty: 20,
	})
	svc := NewReviewService(structures, ruleStore, engine, scorer, nil, logging.NewDefaultLogger())
	workflowID := seedStructure(t, structures, "wf-1")

	_, cached, err := svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)
	assert.False(t, cached)

	_, cached, err = svc.RunCodeReview(ctx, workflowID, "")
	require.NoError(t, err)
	assert.False(t, cached, "without a cache every run recomputes")
}
