package analysis

import (
	"testing"

	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
)

func invoiceStructure() *workflow.Structure {
	return &workflow.Structure{
		WorkflowID: "wf-invoice",
		Platform:   workflow.PlatformUiPath,
		Activities: []workflow.ActivityNode{
			{
				TypeName:    "TryCatch",
				DisplayName: "HandleErrors",
				Children: []workflow.ActivityNode{
					{
						TypeName:    "Sequence",
						DisplayName: "ProcessInvoices",
						Children: []workflow.ActivityNode{
							{TypeName: "Assign", DisplayName: "SetTotal"},
							{TypeName: "Click", DisplayName: "OpenDetails"},
							{TypeName: "InvokeWorkflowFile", DisplayName: "PostInvoice"},
							{TypeName: "SomeVendorWidget", DisplayName: "CustomStep"},
						},
					},
				},
			},
			{TypeName: "LogMessage", DisplayName: "LogDone"},
		},
		Variables: []workflow.Variable{
			{Name: "InvoiceTotal", Type: "Double", Scope: "Main", UsageCount: 3},
			{Name: "TempRow", Type: "DataRow", Scope: "Main", UsageCount: 0},
		},
		Arguments: []workflow.Argument{
			{Name: "InPath", Type: "String", Direction: workflow.DirectionIn, UsageCount: 1},
			{Name: "OutStatus", Type: "String", Direction: workflow.DirectionOut, UsageCount: 0},
		},
	}
}

// TestExtractMetrics tests the structural snapshot over a representative tree
func TestExtractMetrics(t *testing.T) {
	metrics := ExtractMetrics(invoiceStructure())

	if metrics.ActivityCount != 7 {
		t.Errorf("ActivityCount = %d, want 7", metrics.ActivityCount)
	}
	if metrics.MaxNestingDepth != 2 {
		t.Errorf("MaxNestingDepth = %d, want 2", metrics.MaxNestingDepth)
	}
	if metrics.ExceptionHandlerCount != 1 {
		t.Errorf("ExceptionHandlerCount = %d, want 1", metrics.ExceptionHandlerCount)
	}
	if metrics.InvokedWorkflowCount != 1 {
		t.Errorf("InvokedWorkflowCount = %d, want 1", metrics.InvokedWorkflowCount)
	}
	if metrics.VariableCount != 2 || metrics.UnusedVariables != 1 {
		t.Errorf("Variables = %d/%d unused, want 2/1", metrics.VariableCount, metrics.UnusedVariables)
	}
	if metrics.ArgumentCount != 2 || metrics.UnusedArguments != 1 {
		t.Errorf("Arguments = %d/%d unused, want 2/1", metrics.ArgumentCount, metrics.UnusedArguments)
	}
}

// TestExtractMetricsPartition tests that the category breakdown accounts for
// every activity, with unknown types in Other
func TestExtractMetricsPartition(t *testing.T) {
	metrics := ExtractMetrics(invoiceStructure())

	total := 0
	for _, count := range metrics.CategoryBreakdown {
		total += count
	}
	if total != metrics.ActivityCount {
		t.Errorf("Category breakdown sums to %d, want %d", total, metrics.ActivityCount)
	}
	if metrics.CategoryBreakdown[taxonomy.CategoryOther] != 1 {
		t.Errorf("Other count = %d, want 1", metrics.CategoryBreakdown[taxonomy.CategoryOther])
	}
}

// TestExtractMetricsFanOut tests the advisory fan-out distribution over
// non-leaf nodes
func TestExtractMetricsFanOut(t *testing.T) {
	metrics := ExtractMetrics(invoiceStructure())

	// Two containers: TryCatch with 1 child, Sequence with 4.
	if metrics.MeanFanOut != 2.5 {
		t.Errorf("MeanFanOut = %v, want 2.5", metrics.MeanFanOut)
	}
	if metrics.MedianFanOut != 2.5 {
		t.Errorf("MedianFanOut = %v, want 2.5", metrics.MedianFanOut)
	}
}

// TestExtractMetricsTotal tests that degenerate inputs never fail
func TestExtractMetricsTotal(t *testing.T) {
	empty := ExtractMetrics(nil)
	if empty.ActivityCount != 0 || empty.CategoryBreakdown == nil {
		t.Error("Expected zero metrics with an initialized breakdown for nil input")
	}

	noActivities := ExtractMetrics(&workflow.Structure{WorkflowID: "wf-empty"})
	if noActivities.ActivityCount != 0 || noActivities.MeanFanOut != 0 {
		t.Error("Expected zero metrics for a structure without activities")
	}
}
