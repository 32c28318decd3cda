// Package ruleengine evaluates the versioned rule set against a workflow
// structure. Evaluation is pure and failure-isolated: one malformed rule
// becomes a diagnostic, never an aborted run.
package ruleengine

import (
	"fmt"
	"regexp"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/rules"
	"rpascope/domain/workflow"
	"rpascope/internal/config"
	"rpascope/ports"
)

// Result is the outcome of one rule evaluation run
type Result struct {
	Findings       []rules.Finding
	CategoryScores map[rules.Category]float64
	QualityScore   float64
	QualityGrade   report.QualityGrade
	Diagnostics    []rules.Diagnostic
}

// Engine evaluates rules against workflow structures
type Engine struct {
	scoring    config.ScoringConfig
	evaluators ports.EvaluatorRegistry
}

// NewEngine creates a rule engine. The evaluator registry may be nil when no
// custom rules are in play.
func NewEngine(scoring config.ScoringConfig, evaluators ports.EvaluatorRegistry) *Engine {
	return &Engine{scoring: scoring, evaluators: evaluators}
}

// Evaluate runs every applicable rule against the structure and computes the
// quality score and grade. Rules are filtered to active rules whose platform
// matches the structure (or Both). Dispatch is an exhaustive switch on the
// closed check variant.
func (e *Engine) Evaluate(structure *workflow.Structure, metrics report.StructuralMetrics, ruleSet []rules.Rule) Result {
	result := Result{
		CategoryScores: make(map[rules.Category]float64),
	}

	if structure == nil || structure.IsEmpty() {
		result.Diagnostics = append(result.Diagnostics, rules.Diagnostic{
			Kind:    rules.DiagnosticWarning,
			Message: fmt.Sprintf("%v: no activities; review ran against an empty structure", core.ErrParserIncomplete),
		})
	}

	for i := range ruleSet {
		rule := &ruleSet[i]
		if structure == nil || !rule.AppliesTo(structure.Platform) {
			continue
		}

		findings, diag := e.evaluateRule(rule, structure, metrics)
		result.Findings = append(result.Findings, findings...)
		if diag != nil {
			result.Diagnostics = append(result.Diagnostics, *diag)
		}
	}

	result.QualityScore = e.scoreFindings(result.Findings, "")
	result.QualityGrade = e.scoring.GradeBands.GradeFor(result.QualityScore)
	for _, category := range presentCategories(ruleSet) {
		result.CategoryScores[category] = e.scoreFindings(result.Findings, category)
	}
	return result
}

// evaluateRule dispatches a single rule; failures are returned as a
// diagnostic so the remaining rules still run.
func (e *Engine) evaluateRule(rule *rules.Rule, structure *workflow.Structure, metrics report.StructuralMetrics) ([]rules.Finding, *rules.Diagnostic) {
	switch rule.Check.Kind {
	case rules.CheckRegex:
		return e.evaluateRegex(rule, structure)
	case rules.CheckActivityCount:
		return e.evaluateActivityCount(rule, metrics), nil
	case rules.CheckNestingDepth:
		return e.evaluateNestingDepth(rule, metrics), nil
	case rules.CheckCustom:
		return e.evaluateCustom(rule, structure, metrics)
	default:
		return nil, &rules.Diagnostic{
			RuleID:  rule.RuleID,
			Kind:    rules.DiagnosticError,
			Message: fmt.Sprintf("unknown check kind %q", rule.Check.Kind),
		}
	}
}

// evaluateRegex tests the pattern against each node's display text and
// name-like properties; every matching node yields one finding. Patterns are
// validated at activation, so a compile failure here is an engine-level
// diagnostic, not a panic.
func (e *Engine) evaluateRegex(rule *rules.Rule, structure *workflow.Structure) ([]rules.Finding, *rules.Diagnostic) {
	pattern, err := rule.CompiledPattern()
	if err != nil {
		return nil, &rules.Diagnostic{
			RuleID:  rule.RuleID,
			Kind:    rules.DiagnosticError,
			Message: fmt.Sprintf("invalid regex pattern %q: %v", rule.Check.Pattern, err),
		}
	}

	var findings []rules.Finding
	walkWithRefs(structure.Activities, func(node *workflow.ActivityNode, ref string) {
		if matchesNode(pattern, node) {
			findings = append(findings, e.newFinding(rule, ref,
				fmt.Sprintf("activity %q matches pattern %s", nodeLabel(node), rule.Check.Pattern)))
		}
	})
	return findings, nil
}

// evaluateActivityCount fires at most once per run when the category's count
// exceeds the rule threshold
func (e *Engine) evaluateActivityCount(rule *rules.Rule, metrics report.StructuralMetrics) []rules.Finding {
	count := metrics.CategoryBreakdown[rule.Check.ActivityCategory]
	if count <= rule.Check.Threshold {
		return nil
	}
	return []rules.Finding{e.newFinding(rule, "workflow",
		fmt.Sprintf("%d %s activities exceed the threshold of %d",
			count, rule.Check.ActivityCategory, rule.Check.Threshold))}
}

// evaluateNestingDepth fires at most once per run
func (e *Engine) evaluateNestingDepth(rule *rules.Rule, metrics report.StructuralMetrics) []rules.Finding {
	if metrics.MaxNestingDepth <= rule.Check.Threshold {
		return nil
	}
	return []rules.Finding{e.newFinding(rule, "workflow",
		fmt.Sprintf("nesting depth %d exceeds the threshold of %d",
			metrics.MaxNestingDepth, rule.Check.Threshold))}
}

// evaluateCustom delegates to the registered evaluator; unknown evaluators
// are skipped with a warning, never a hard failure.
func (e *Engine) evaluateCustom(rule *rules.Rule, structure *workflow.Structure, metrics report.StructuralMetrics) ([]rules.Finding, *rules.Diagnostic) {
	if e.evaluators == nil {
		return nil, &rules.Diagnostic{
			RuleID:  rule.RuleID,
			Kind:    rules.DiagnosticWarning,
			Message: fmt.Sprintf("no evaluator registry configured; skipping %q", rule.Check.EvaluatorID),
		}
	}
	evaluator, ok := e.evaluators.Lookup(rule.Check.EvaluatorID)
	if !ok {
		return nil, &rules.Diagnostic{
			RuleID:  rule.RuleID,
			Kind:    rules.DiagnosticWarning,
			Message: fmt.Sprintf("unknown custom evaluator %q; rule skipped", rule.Check.EvaluatorID),
		}
	}

	raw, err := evaluator.Evaluate(structure, metrics)
	if err != nil {
		return nil, &rules.Diagnostic{
			RuleID:  rule.RuleID,
			Kind:    rules.DiagnosticError,
			Message: fmt.Sprintf("custom evaluator %q failed: %v", rule.Check.EvaluatorID, err),
		}
	}

	// Stamp rule identity onto evaluator output so findings always name
	// their rule.
	findings := make([]rules.Finding, 0, len(raw))
	for _, f := range raw {
		stamped := e.newFinding(rule, f.ActivityRef, f.Message)
		if f.ImpactNarrative != "" {
			stamped.ImpactNarrative = f.ImpactNarrative
		}
		findings = append(findings, stamped)
	}
	return findings, nil
}

func (e *Engine) newFinding(rule *rules.Rule, ref, message string) rules.Finding {
	return rules.Finding{
		RuleID:          rule.RuleID,
		Severity:        rule.Severity,
		Category:        rule.Category,
		ActivityRef:     ref,
		Message:         message,
		Recommendation:  rule.Recommendation,
		ImpactNarrative: rule.Impact,
	}
}

// scoreFindings computes max(0, 100 - sum of severity weights) over the
// findings, optionally scoped to one category. An empty category scopes to
// all findings.
func (e *Engine) scoreFindings(findings []rules.Finding, category rules.Category) float64 {
	score := 100.0
	for _, f := range findings {
		if category != "" && f.Category != category {
			continue
		}
		score -= e.scoring.SeverityWeights[f.Severity]
	}
	if score < 0 {
		return 0
	}
	return score
}

// presentCategories collects the distinct categories of the evaluated rule
// set in stable first-seen order
func presentCategories(ruleSet []rules.Rule) []rules.Category {
	seen := make(map[rules.Category]bool)
	var categories []rules.Category
	for _, r := range ruleSet {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	return categories
}

// matchesNode tests the pattern against the node's display name and
// name-like properties
func matchesNode(pattern *regexp.Regexp, node *workflow.ActivityNode) bool {
	if node.DisplayName != "" && pattern.MatchString(node.DisplayName) {
		return true
	}
	for _, key := range []string{"Name", "DisplayName", "Annotation"} {
		if value, ok := node.Properties[key]; ok && pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func nodeLabel(node *workflow.ActivityNode) string {
	if node.DisplayName != "" {
		return node.DisplayName
	}
	return node.TypeName
}

// walkWithRefs walks the tree iteratively, handing each node a positional
// reference like "Sequence[0]/If[1]". Refs locate findings for the caller.
func walkWithRefs(activities []workflow.ActivityNode, visit func(node *workflow.ActivityNode, ref string)) {
	type frame struct {
		node *workflow.ActivityNode
		ref  string
	}
	stack := make([]frame, 0, len(activities))
	for i := len(activities) - 1; i >= 0; i-- {
		stack = append(stack, frame{
			node: &activities[i],
			ref:  fmt.Sprintf("%s[%d]", activities[i].TypeName, i),
		})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(f.node, f.ref)

		children := f.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node: &children[i],
				ref:  fmt.Sprintf("%s/%s[%d]", f.ref, children[i].TypeName, i),
			})
		}
	}
}
