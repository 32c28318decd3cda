package analysis

import (
	"testing"

	"rpascope/domain/workflow"
	"rpascope/internal/config"
)

func defaultUsageConfig() config.UsageConfig {
	return config.UsageConfig{
		NamingPattern: `^[A-Z][a-zA-Z0-9]*$`,
		UsageWeight:   1.0,
		TypeWeight:    1.0,
		NamingWeight:  1.0,
		IssuePenalty:  10.0,
	}
}

// TestAnalyzeCleanStructure tests that a clean structure scores 100 across
// the board
func TestAnalyzeCleanStructure(t *testing.T) {
	analyzer, err := NewUsageAnalyzer(defaultUsageConfig())
	if err != nil {
		t.Fatalf("Unexpected analyzer error: %v", err)
	}

	rep := analyzer.Analyze(&workflow.Structure{
		WorkflowID: "wf-clean",
		Platform:   workflow.PlatformUiPath,
		Variables: []workflow.Variable{
			{Name: "InvoiceTotal", Type: "Double", Scope: "Main", UsageCount: 2},
		},
		Arguments: []workflow.Argument{
			{Name: "InPath", Type: "String", Direction: workflow.DirectionIn, UsageCount: 1},
		},
	})

	if rep.OverallScore != 100 {
		t.Errorf("OverallScore = %v, want 100", rep.OverallScore)
	}
	if len(rep.UnusedVariables)+len(rep.TypeMismatches)+len(rep.ScopeIssues)+len(rep.NamingViolations) != 0 {
		t.Errorf("Expected no issues, got %+v", rep)
	}
}

// TestAnalyzeDetections tests each detector against a deliberately bad
// structure
func TestAnalyzeDetections(t *testing.T) {
	analyzer, err := NewUsageAnalyzer(defaultUsageConfig())
	if err != nil {
		t.Fatalf("Unexpected analyzer error: %v", err)
	}

	rep := analyzer.Analyze(&workflow.Structure{
		WorkflowID: "wf-messy",
		Platform:   workflow.PlatformUiPath,
		Variables: []workflow.Variable{
			{Name: "TempRow", Type: "DataRow", Scope: "Main", UsageCount: 0}, // unused
			{Name: "Payload", Type: "Object", Scope: "Main", UsageCount: 1},  // weak type
			{Name: "Counter", Type: "Int32", Scope: "Global", UsageCount: 2}, // broad scope
			{Name: "my_total", Type: "Double", Scope: "Main", UsageCount: 1}, // naming
			{Name: "Unscoped", Type: "String", Scope: "", UsageCount: 1},     // missing scope
		},
		Arguments: []workflow.Argument{
			{Name: "out_result", Type: "", Direction: workflow.DirectionOut, UsageCount: 0}, // unused, untyped, naming
		},
	})

	if len(rep.UnusedVariables) != 1 || rep.UnusedVariables[0] != "TempRow" {
		t.Errorf("UnusedVariables = %v, want [TempRow]", rep.UnusedVariables)
	}
	if len(rep.UnusedArguments) != 1 || rep.UnusedArguments[0] != "out_result" {
		t.Errorf("UnusedArguments = %v, want [out_result]", rep.UnusedArguments)
	}
	if len(rep.TypeMismatches) != 2 {
		t.Errorf("TypeMismatches = %v, want 2 entries (weak type + missing type)", rep.TypeMismatches)
	}
	if len(rep.ScopeIssues) != 2 {
		t.Errorf("ScopeIssues = %v, want 2 entries (global + missing scope)", rep.ScopeIssues)
	}
	if len(rep.NamingViolations) != 2 {
		t.Errorf("NamingViolations = %v, want 2 entries", rep.NamingViolations)
	}

	// 2 unused, 4 type/scope issues, 2 naming violations at 10 points each.
	if rep.UsageScore != 80 {
		t.Errorf("UsageScore = %v, want 80", rep.UsageScore)
	}
	if rep.TypeScore != 60 {
		t.Errorf("TypeScore = %v, want 60", rep.TypeScore)
	}
	if rep.NamingScore != 80 {
		t.Errorf("NamingScore = %v, want 80", rep.NamingScore)
	}
}

// TestNewUsageAnalyzerRejectsBadPattern tests that an invalid naming regex
// fails construction
func TestNewUsageAnalyzerRejectsBadPattern(t *testing.T) {
	cfg := defaultUsageConfig()
	cfg.NamingPattern = "([unclosed"
	if _, err := NewUsageAnalyzer(cfg); err == nil {
		t.Error("Expected construction to fail on an invalid pattern")
	}
}

// TestPenalizedFloor tests that sub-scores floor at zero
func TestPenalizedFloor(t *testing.T) {
	if got := penalized(15, 10); got != 0 {
		t.Errorf("penalized(15, 10) = %v, want 0", got)
	}
	if got := penalized(3, 10); got != 70 {
		t.Errorf("penalized(3, 10) = %v, want 70", got)
	}
}

// TestWeightedMean tests the sub-score combination
func TestWeightedMean(t *testing.T) {
	if got := WeightedMean([]float64{80, 60, 100}, []float64{1, 1, 1}); got != 80 {
		t.Errorf("Equal-weight mean = %v, want 80", got)
	}
	if got := WeightedMean([]float64{100, 0}, []float64{3, 1}); got != 75 {
		t.Errorf("Weighted mean = %v, want 75", got)
	}
	if got := WeightedMean(nil, nil); got != 0 {
		t.Errorf("Empty mean = %v, want 0", got)
	}
}
