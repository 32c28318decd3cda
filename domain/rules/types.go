// Package rules defines the versioned review rule model and its findings.
// A rule is immutable once published; tenant-custom rules go through the
// store's activate/deactivate lifecycle, built-in rules are read-only.
package rules

import (
	"rpascope/domain/core"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
)

// Severity ranks how serious a finding is
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMajor    Severity = "major"
	SeverityMedium   Severity = "medium"
	SeverityMinor    Severity = "minor"
	SeverityInfo     Severity = "info"
)

// Level returns the numeric rank (higher = more severe)
func (s Severity) Level() int {
	switch s {
	case SeverityCritical:
		return 6
	case SeverityHigh:
		return 5
	case SeverityMajor:
		return 4
	case SeverityMedium:
		return 3
	case SeverityMinor:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Category groups rules by the quality concern they police
type Category string

const (
	CategoryReliability     Category = "reliability"
	CategoryMaintainability Category = "maintainability"
	CategoryNaming          Category = "naming"
	CategoryPerformance     Category = "performance"
	CategoryBestPractice    Category = "best_practice"
)

// CheckKind discriminates the closed check variant. New kinds are a
// compile-time-checked addition: every dispatch site switches exhaustively
// on this type.
type CheckKind string

const (
	CheckRegex         CheckKind = "regex"
	CheckActivityCount CheckKind = "activity_count"
	CheckNestingDepth  CheckKind = "nesting_depth"
	CheckCustom        CheckKind = "custom"
)

// Check is the tagged variant describing how a rule evaluates. Only the
// fields relevant to Kind are populated; constructors below keep that
// invariant.
type Check struct {
	Kind CheckKind `json:"kind"`

	// Pattern is the regex source for CheckRegex rules.
	Pattern string `json:"pattern,omitempty"`

	// ActivityCategory and Threshold configure CheckActivityCount; Threshold
	// alone configures CheckNestingDepth.
	ActivityCategory taxonomy.Category `json:"activity_category,omitempty"`
	Threshold        int               `json:"threshold,omitempty"`

	// EvaluatorID names the pluggable evaluator for CheckCustom rules.
	EvaluatorID string `json:"evaluator_id,omitempty"`
}

// RegexCheck builds a regex check
func RegexCheck(pattern string) Check {
	return Check{Kind: CheckRegex, Pattern: pattern}
}

// ActivityCountCheck fires when a category's activity count exceeds threshold
func ActivityCountCheck(category taxonomy.Category, threshold int) Check {
	return Check{Kind: CheckActivityCount, ActivityCategory: category, Threshold: threshold}
}

// NestingDepthCheck fires when max nesting depth exceeds threshold
func NestingDepthCheck(threshold int) Check {
	return Check{Kind: CheckNestingDepth, Threshold: threshold}
}

// CustomCheck delegates to a registered evaluator
func CustomCheck(evaluatorID string) Check {
	return Check{Kind: CheckCustom, EvaluatorID: evaluatorID}
}

// Rule is one review rule. Version increments on every published edit so the
// review cache can key on the active ruleset fingerprint.
type Rule struct {
	RuleID         core.RuleID       `json:"rule_id"`
	Name           string            `json:"name"`
	Category       Category          `json:"category"`
	Severity       Severity          `json:"severity"`
	Check          Check             `json:"check"`
	Platform       workflow.Platform `json:"platform"`
	IsActive       bool              `json:"is_active"`
	BuiltIn        bool              `json:"built_in"`
	Recommendation string            `json:"recommendation,omitempty"`
	Impact         string            `json:"impact,omitempty"`
	Version        int               `json:"version"`
	TenantID       core.TenantID     `json:"tenant_id,omitempty"`
}

// AppliesTo reports whether the rule should run against a structure on the
// given platform
func (r *Rule) AppliesTo(platform workflow.Platform) bool {
	return r.IsActive && (r.Platform == platform || r.Platform == workflow.PlatformBoth)
}

// Finding is one rule firing against one structural location. Findings are
// never deduplicated across locations even when the same rule fires
// repeatedly.
type Finding struct {
	RuleID          core.RuleID `json:"rule_id"`
	Severity        Severity    `json:"severity"`
	Category        Category    `json:"category"`
	ActivityRef     string      `json:"activity_ref"`
	Message         string      `json:"message"`
	Recommendation  string      `json:"recommendation,omitempty"`
	ImpactNarrative string      `json:"impact_narrative,omitempty"`
}

// DiagnosticKind classifies engine-level diagnostics
type DiagnosticKind string

const (
	DiagnosticWarning DiagnosticKind = "warning"
	DiagnosticError   DiagnosticKind = "error"
)

// Diagnostic records a per-rule evaluation problem (bad regex, unknown
// evaluator) or an input problem (parser incomplete). One bad rule never
// blocks the rest of the evaluation; it surfaces here instead.
type Diagnostic struct {
	RuleID  core.RuleID    `json:"rule_id,omitempty"`
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}
