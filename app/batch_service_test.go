package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpascope/domain/core"
)

// TestReviewAllCollectsPerWorkflowResults tests that failures are collected
// in the results and never abort the batch
func TestReviewAllCollectsPerWorkflowResults(t *testing.T) {
	ctx := context.Background()
	reviews, structures, _ := newTestReviewService(t)
	batch := NewBatchService(reviews, 4)

	var ids []core.WorkflowID
	for i := 0; i < 10; i++ {
		ids = append(ids, seedStructure(t, structures, fmt.Sprintf("wf-%d", i)))
	}
	ids = append(ids, core.WorkflowID("wf-ghost"))

	results, err := batch.ReviewAll(ctx, ids)
	require.NoError(t, err)
	require.Len(t, results, 11)

	for i := 0; i < 10; i++ {
		assert.NoError(t, results[i].Err, "workflow %s", results[i].WorkflowID)
		assert.NotNil(t, results[i].Report)
		assert.Equal(t, ids[i], results[i].WorkflowID, "results keep request order")
	}
	assert.Error(t, results[10].Err, "missing workflow fails its own slot only")
	assert.Nil(t, results[10].Report)
}

// TestReviewAllContextCancellation tests that cancellation aborts the batch
func TestReviewAllContextCancellation(t *testing.T) {
	reviews, structures, _ := newTestReviewService(t)
	batch := NewBatchService(reviews, 1)

	var ids []core.WorkflowID
	for i := 0; i < 5; i++ {
		ids = append(ids, seedStructure(t, structures, fmt.Sprintf("wf-%d", i)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := batch.ReviewAll(ctx, ids)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestReviewAllEmpty tests the zero-workflow batch
func TestReviewAllEmpty(t *testing.T) {
	reviews, _, _ := newTestReviewService(t)
	batch := NewBatchService(reviews, 0)

	results, err := batch.ReviewAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
