package ports

import (
	"rpascope/domain/report"
	"rpascope/domain/rules"
	"rpascope/domain/workflow"
)

// Evaluator is a pluggable check for custom rules. Implementations must be
// pure: same structure and metrics in, same findings out. The rule engine
// fills in rule identity/severity on the returned findings.
type Evaluator interface {
	ID() string
	Evaluate(structure *workflow.Structure, metrics report.StructuralMetrics) ([]rules.Finding, error)
}

// EvaluatorRegistry resolves evaluators by ID. Unknown IDs are skipped by the
// engine with a warning diagnostic, never a hard failure.
type EvaluatorRegistry interface {
	Lookup(id string) (Evaluator, bool)
}
