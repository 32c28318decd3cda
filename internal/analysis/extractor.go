// Package analysis contains the pure structural engines: metrics extraction,
// complexity scoring and variable/argument usage analysis. Every function in
// this package is deterministic, synchronous and side-effect free.
package analysis

import (
	"github.com/montanaflynn/stats"

	"rpascope/domain/report"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
)

// ExtractMetrics walks a workflow structure and computes its structural
// metrics. It is total: absent or malformed optional fields default to
// zero/empty, never an error. Every node is classified via the taxonomy with
// Other as the fallback, so the category breakdown partitions 100% of
// activities.
func ExtractMetrics(structure *workflow.Structure) report.StructuralMetrics {
	metrics := report.StructuralMetrics{
		CategoryBreakdown: make(map[taxonomy.Category]int),
	}
	if structure == nil {
		return metrics
	}

	var fanOuts []float64
	workflow.Walk(structure.Activities, func(node *workflow.ActivityNode, depth int) bool {
		metrics.ActivityCount++
		if depth > metrics.MaxNestingDepth {
			metrics.MaxNestingDepth = depth
		}

		category := taxonomy.Classify(node.TypeName)
		metrics.CategoryBreakdown[category]++

		if taxonomy.IsExceptionHandler(node.TypeName) {
			metrics.ExceptionHandlerCount++
		}
		if taxonomy.IsInvocation(node.TypeName) {
			metrics.InvokedWorkflowCount++
		}
		if len(node.Children) > 0 {
			fanOuts = append(fanOuts, float64(len(node.Children)))
		}
		return true
	})

	metrics.VariableCount = len(structure.Variables)
	metrics.ArgumentCount = len(structure.Arguments)
	for _, v := range structure.Variables {
		if v.UsageCount == 0 {
			metrics.UnusedVariables++
		}
	}
	for _, a := range structure.Arguments {
		if a.UsageCount == 0 {
			metrics.UnusedArguments++
		}
	}

	if len(fanOuts) > 0 {
		// stats errors only on empty input, which is excluded here.
		mean, _ := stats.Mean(fanOuts)
		median, _ := stats.Median(fanOuts)
		metrics.MeanFanOut = mean
		metrics.MedianFanOut = median
	}

	return metrics
}
