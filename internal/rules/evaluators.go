package ruleengine

import (
	"fmt"
	"strconv"

	"rpascope/domain/report"
	"rpascope/domain/rules"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
	"rpascope/ports"
)

// Registry is a map-backed evaluator registry
type Registry struct {
	evaluators map[string]ports.Evaluator
}

// NewRegistry creates a registry preloaded with the built-in evaluators
func NewRegistry() *Registry {
	r := &Registry{evaluators: make(map[string]ports.Evaluator)}
	r.Register(missingTryCatchEvaluator{})
	r.Register(hardcodedDelayEvaluator{})
	r.Register(missingLoggingEvaluator{})
	return r
}

// Register adds an evaluator; later registrations replace earlier ones with
// the same ID
func (r *Registry) Register(e ports.Evaluator) {
	r.evaluators[e.ID()] = e
}

// Lookup resolves an evaluator by ID
func (r *Registry) Lookup(id string) (ports.Evaluator, bool) {
	e, ok := r.evaluators[id]
	return e, ok
}

// EvaluatorMissingTryCatch fires when a non-empty workflow declares no
// exception handling scope at all.
const EvaluatorMissingTryCatch = "missing_try_catch"

type missingTryCatchEvaluator struct{}

func (missingTryCatchEvaluator) ID() string { return EvaluatorMissingTryCatch }

func (missingTryCatchEvaluator) Evaluate(structure *workflow.Structure, metrics report.StructuralMetrics) ([]rules.Finding, error) {
	if metrics.ActivityCount == 0 || metrics.ExceptionHandlerCount > 0 {
		return nil, nil
	}
	return []rules.Finding{{
		ActivityRef: "workflow",
		Message:     fmt.Sprintf("workflow has %d activities and no exception handling scope", metrics.ActivityCount),
	}}, nil
}

// EvaluatorHardcodedDelay flags Delay/Wait activities with a literal duration
// property; fixed sleeps are brittle under load.
const EvaluatorHardcodedDelay = "hardcoded_delay"

type hardcodedDelayEvaluator struct{}

func (hardcodedDelayEvaluator) ID() string { return EvaluatorHardcodedDelay }

func (hardcodedDelayEvaluator) Evaluate(structure *workflow.Structure, _ report.StructuralMetrics) ([]rules.Finding, error) {
	var findings []rules.Finding
	walkWithRefs(structure.Activities, func(node *workflow.ActivityNode, ref string) {
		if node.TypeName != "Delay" && node.TypeName != "WaitStart" {
			return
		}
		duration := node.Properties["Duration"]
		if duration == "" {
			duration = node.Properties["Timeout"]
		}
		if isLiteralDuration(duration) {
			findings = append(findings, rules.Finding{
				ActivityRef: ref,
				Message:     fmt.Sprintf("activity %q uses a hard-coded delay of %s", nodeLabel(node), duration),
			})
		}
	})
	return findings, nil
}

// EvaluatorMissingLogging fires when a non-trivial workflow contains no
// logging activities at all.
const EvaluatorMissingLogging = "missing_logging"

type missingLoggingEvaluator struct{}

func (missingLoggingEvaluator) ID() string { return EvaluatorMissingLogging }

func (missingLoggingEvaluator) Evaluate(_ *workflow.Structure, metrics report.StructuralMetrics) ([]rules.Finding, error) {
	if metrics.ActivityCount < 5 || metrics.CategoryBreakdown[taxonomy.CategoryLogging] > 0 {
		return nil, nil
	}
	return []rules.Finding{{
		ActivityRef: "workflow",
		Message:     fmt.Sprintf("workflow has %d activities and no logging", metrics.ActivityCount),
	}}, nil
}

// isLiteralDuration reports whether the property looks like a constant
// duration (plain number or hh:mm:ss) rather than an expression
func isLiteralDuration(value string) bool {
	if value == "" {
		return false
	}
	if _, err := strconv.Atoi(value); err == nil {
		return true
	}
	var h, m, s int
	if _, err := fmt.Sscanf(value, "%d:%d:%d", &h, &m, &s); err == nil {
		return true
	}
	return false
}
