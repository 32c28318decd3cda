package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/ports"
)

func testKey(id string, kind report.ReportKind) ports.CacheKey {
	return ports.CacheKey{WorkflowID: core.WorkflowID(id), Kind: kind}
}

// TestPutGetRoundTrip tests basic hit/miss behavior
func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	key := testKey("wf-1", report.KindAnalysis)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Errorf("Expected a clean miss, got hit=%v err=%v", hit, err)
	}

	rep := &report.AnalysisReport{WorkflowID: "wf-1", QualityScore: 85}
	if err := c.Put(ctx, key, rep); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Expected a hit, got hit=%v err=%v", hit, err)
	}
	if value.(*report.AnalysisReport) != rep {
		t.Error("Expected the stored report back")
	}
}

// TestPutReplacesWholesale tests that a second put fully supersedes the
// first; entries are never merged
func TestPutReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	key := testKey("wf-1", report.KindAnalysis)

	first := &report.AnalysisReport{WorkflowID: "wf-1", QualityScore: 70}
	second := &report.AnalysisReport{WorkflowID: "wf-1", QualityScore: 85}
	_ = c.Put(ctx, key, first)
	_ = c.Put(ctx, key, second)

	value, hit, _ := c.Get(ctx, key)
	if !hit || value.(*report.AnalysisReport).QualityScore != 85 {
		t.Errorf("Expected the second report only, got %+v", value)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

// TestKeysAreIndependentPerKind tests that analysis, migration and usage
// entries for one workflow do not collide
func TestKeysAreIndependentPerKind(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	_ = c.Put(ctx, testKey("wf-1", report.KindAnalysis), "analysis")
	_ = c.Put(ctx, testKey("wf-1", report.KindMigration), "migration")
	_ = c.Put(ctx, testKey("wf-1", report.KindUsage), "usage")

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	value, hit, _ := c.Get(ctx, testKey("wf-1", report.KindMigration))
	if !hit || value != "migration" {
		t.Errorf("Migration entry = %v, want \"migration\"", value)
	}
}

// TestInvalidate tests entry removal
func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	key := testKey("wf-1", report.KindAnalysis)

	_ = c.Put(ctx, key, "value")
	if err := c.Invalidate(ctx, key); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Expected a miss after invalidation")
	}
	// Invalidating a missing key is a no-op, not an error.
	if err := c.Invalidate(ctx, key); err != nil {
		t.Errorf("Invalidate on missing key failed: %v", err)
	}
}

// TestTTLExpiry tests lazy expiry of stale entries
func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10 * time.Millisecond)
	key := testKey("wf-1", report.KindAnalysis)

	_ = c.Put(ctx, key, "value")
	if _, hit, _ := c.Get(ctx, key); !hit {
		t.Fatal("Expected a hit before expiry")
	}

	time.Sleep(25 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Expected a miss after expiry")
	}
	if c.Len() != 0 {
		t.Errorf("Expected lazy eviction to drop the entry, Len = %d", c.Len())
	}
}

// TestConcurrentAccess hammers one key from many goroutines; the race
// detector verifies serialization, and the surviving value must be one of
// the written reports, never a partial state
func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	key := testKey("wf-1", report.KindAnalysis)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = c.Put(ctx, key, fmt.Sprintf("report-%d", n))
		}(i)
		go func() {
			defer wg.Done()
			_, _, _ = c.Get(ctx, key)
		}()
	}
	wg.Wait()

	value, hit, _ := c.Get(ctx, key)
	if !hit {
		t.Fatal("Expected a surviving entry")
	}
	if _, ok := value.(string); !ok {
		t.Errorf("Expected one of the written values, got %T", value)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
