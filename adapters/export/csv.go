// Package export renders reports to CSV, JSON and XLSX. CSV and JSON output
// is byte-identical across repeated exports of the same report; XLSX carries
// workbook metadata and is not byte-stable.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"rpascope/domain/report"
	"rpascope/domain/rules"
	"rpascope/internal/config"
)

// Exporter renders reports. The scoring config supplies the severity weight
// column on finding rows.
type Exporter struct {
	scoring config.ScoringConfig
}

// NewExporter creates an exporter
func NewExporter(scoring config.ScoringConfig) *Exporter {
	return &Exporter{scoring: scoring}
}

// findingHeader has exactly 9 fields: the 7 finding attributes plus the
// owning workflow and the applied severity weight.
var findingHeader = []string{
	"workflow_id", "rule_id", "severity", "severity_weight",
	"category", "activity_ref", "message", "recommendation", "impact",
}

// AnalysisCSV renders an analysis report as a flattened findings table:
// a header row plus one row per finding.
func (e *Exporter) AnalysisCSV(rep *report.AnalysisReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(findingHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, f := range rep.Findings {
		row := []string{
			rep.WorkflowID.String(),
			f.RuleID.String(),
			string(f.Severity),
			formatFloat(e.scoring.SeverityWeights[f.Severity]),
			string(f.Category),
			f.ActivityRef,
			f.Message,
			f.Recommendation,
			f.ImpactNarrative,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write finding row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

var mappingHeader = []string{
	"workflow_id", "source_activity", "category", "target_equivalent",
	"mapping_type", "effort_hours", "notes",
}

// MigrationCSV renders a migration report as a flattened mapping table
func (e *Exporter) MigrationCSV(rep *report.MigrationReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(mappingHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, m := range rep.Mappings {
		target := ""
		if m.TargetEquivalent != nil {
			target = *m.TargetEquivalent
		}
		row := []string{
			rep.WorkflowID.String(),
			m.SourceActivity,
			string(m.Category),
			target,
			string(m.MappingType),
			formatFloat(m.EffortHours),
			m.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write mapping row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

var ruleHeader = []string{
	"rule_id", "name", "category", "severity", "check_kind", "pattern",
	"activity_category", "threshold", "evaluator_id", "platform",
	"is_active", "built_in", "version",
}

// RulesCSV renders a rule set as CSV (rule store export surface)
func (e *Exporter) RulesCSV(ruleSet []rules.Rule) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ruleHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range ruleSet {
		row := []string{
			r.RuleID.String(),
			r.Name,
			string(r.Category),
			string(r.Severity),
			string(r.Check.Kind),
			r.Check.Pattern,
			string(r.Check.ActivityCategory),
			strconv.Itoa(r.Check.Threshold),
			r.Check.EvaluatorID,
			string(r.Platform),
			strconv.FormatBool(r.IsActive),
			strconv.FormatBool(r.BuiltIn),
			strconv.Itoa(r.Version),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write rule row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
