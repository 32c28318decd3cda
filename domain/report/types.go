// Package report defines the aggregate outputs of the analysis engines.
// Reports are created by one evaluation run and immutable thereafter; a
// re-run supersedes the prior report, it never mutates it.
package report

import (
	"rpascope/domain/core"
	"rpascope/domain/rules"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
)

// ReportKind discriminates cached report entries
type ReportKind string

const (
	KindAnalysis  ReportKind = "analysis"
	KindMigration ReportKind = "migration"
	KindUsage     ReportKind = "usage"
)

// StructuralMetrics is the derived structural snapshot of one workflow.
// Recomputed on every analysis; never persisted independently of the report
// that contains it.
type StructuralMetrics struct {
	ActivityCount         int                       `json:"activity_count"`
	MaxNestingDepth       int                       `json:"max_nesting_depth"`
	CategoryBreakdown     map[taxonomy.Category]int `json:"category_breakdown"`
	VariableCount         int                       `json:"variable_count"`
	ArgumentCount         int                       `json:"argument_count"`
	UnusedVariables       int                       `json:"unused_variables"`
	UnusedArguments       int                       `json:"unused_arguments"`
	InvokedWorkflowCount  int                       `json:"invoked_workflow_count"`
	ExceptionHandlerCount int                       `json:"exception_handler_count"`

	// Fan-out distribution over non-leaf nodes (median/mean children per
	// container); advisory only, not part of any score.
	MeanFanOut   float64 `json:"mean_fan_out"`
	MedianFanOut float64 `json:"median_fan_out"`
}

// ComplexityLevel is the discrete banding of a complexity score
type ComplexityLevel string

const (
	ComplexityLow      ComplexityLevel = "low"
	ComplexityMedium   ComplexityLevel = "medium"
	ComplexityHigh     ComplexityLevel = "high"
	ComplexityCritical ComplexityLevel = "critical"
)

// ComplexityResult pairs the numeric score with its level
type ComplexityResult struct {
	Score float64         `json:"score"`
	Level ComplexityLevel `json:"level"`
}

// QualityGrade is the A-F letter banding of a quality score
type QualityGrade string

const (
	GradeA QualityGrade = "A"
	GradeB QualityGrade = "B"
	GradeC QualityGrade = "C"
	GradeD QualityGrade = "D"
	GradeF QualityGrade = "F"
)

// AnalysisReport is the aggregate code-review result for one workflow
type AnalysisReport struct {
	ReportID       core.ReportID              `json:"report_id"`
	WorkflowID     core.WorkflowID            `json:"workflow_id"`
	ReviewedAt     core.Timestamp             `json:"reviewed_at"`
	QualityScore   float64                    `json:"quality_score"`
	QualityGrade   QualityGrade               `json:"quality_grade"`
	Findings       []rules.Finding            `json:"findings"`
	CategoryScores map[rules.Category]float64 `json:"category_scores"`
	Metrics        StructuralMetrics          `json:"metrics"`
	Complexity     ComplexityResult           `json:"complexity"`
	RulesetHash    core.RulesetHash           `json:"ruleset_hash"`
	Diagnostics    []rules.Diagnostic         `json:"diagnostics,omitempty"`
}

// MappingType classifies how well a source activity translates to the target
// platform
type MappingType string

const (
	MappingDirect       MappingType = "direct"
	MappingPartial      MappingType = "partial"
	MappingComplex      MappingType = "complex"
	MappingIncompatible MappingType = "incompatible"
)

// MigrationMapping is one row per source activity instance
type MigrationMapping struct {
	SourceActivity   string            `json:"source_activity"`
	Category         taxonomy.Category `json:"category"`
	TargetEquivalent *string           `json:"target_equivalent"`
	MappingType      MappingType       `json:"mapping_type"`
	EffortHours      float64           `json:"effort_hours"`
	Notes            string            `json:"notes,omitempty"`
}

// MigrationReport is the aggregate cross-platform compatibility result
type MigrationReport struct {
	ReportID               core.ReportID       `json:"report_id"`
	WorkflowID             core.WorkflowID     `json:"workflow_id"`
	SourcePlatform         workflow.Platform   `json:"source_platform"`
	TargetPlatform         workflow.Platform   `json:"target_platform"`
	Mappings               []MigrationMapping  `json:"mappings"`
	CompatibilityScore     float64             `json:"compatibility_score"`
	TotalEffortHours       float64             `json:"total_effort_hours"`
	CompatibilityBreakdown map[MappingType]int `json:"compatibility_breakdown"`
	GeneratedAt            core.Timestamp      `json:"generated_at"`
}

// UsageIssue names one variable/argument problem with its location
type UsageIssue struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// UsageReport is the variable/argument usage analysis result
type UsageReport struct {
	ReportID         core.ReportID   `json:"report_id"`
	WorkflowID       core.WorkflowID `json:"workflow_id"`
	UnusedVariables  []string        `json:"unused_variables"`
	UnusedArguments  []string        `json:"unused_arguments"`
	TypeMismatches   []UsageIssue    `json:"type_mismatches"`
	ScopeIssues      []UsageIssue    `json:"scope_issues"`
	NamingViolations []UsageIssue    `json:"naming_violations"`
	OverallScore     float64         `json:"overall_score"`
	UsageScore       float64         `json:"usage_score"`
	TypeScore        float64         `json:"type_score"`
	NamingScore      float64         `json:"naming_score"`
	GeneratedAt      core.Timestamp  `json:"generated_at"`
}
