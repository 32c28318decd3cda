package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"rpascope/domain/report"
)

// AnalysisXLSX renders an analysis report as a two-sheet workbook: a summary
// sheet and a findings sheet
func (e *Exporter) AnalysisXLSX(rep *report.AnalysisReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Workflow", rep.WorkflowID.String()},
		{"Reviewed at", rep.ReviewedAt.String()},
		{"Quality score", rep.QualityScore},
		{"Quality grade", string(rep.QualityGrade)},
		{"Complexity score", rep.Complexity.Score},
		{"Complexity level", string(rep.Complexity.Level)},
		{"Activities", rep.Metrics.ActivityCount},
		{"Max nesting depth", rep.Metrics.MaxNestingDepth},
		{"Findings", len(rep.Findings)},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	findings := "Findings"
	if _, err := f.NewSheet(findings); err != nil {
		return nil, fmt.Errorf("failed to add findings sheet: %w", err)
	}
	header := make([]interface{}, len(findingHeader))
	for i, h := range findingHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(findings, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write findings header: %w", err)
	}
	for i, finding := range rep.Findings {
		row := []interface{}{
			rep.WorkflowID.String(),
			finding.RuleID.String(),
			string(finding.Severity),
			e.scoring.SeverityWeights[finding.Severity],
			string(finding.Category),
			finding.ActivityRef,
			finding.Message,
			finding.Recommendation,
			finding.ImpactNarrative,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(findings, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write finding row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MigrationXLSX renders a migration report as a two-sheet workbook
func (e *Exporter) MigrationXLSX(rep *report.MigrationReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Workflow", rep.WorkflowID.String()},
		{"Source platform", rep.SourcePlatform.String()},
		{"Target platform", rep.TargetPlatform.String()},
		{"Compatibility score", rep.CompatibilityScore},
		{"Total effort hours", rep.TotalEffortHours},
		{"Direct", rep.CompatibilityBreakdown[report.MappingDirect]},
		{"Partial", rep.CompatibilityBreakdown[report.MappingPartial]},
		{"Complex", rep.CompatibilityBreakdown[report.MappingComplex]},
		{"Incompatible", rep.CompatibilityBreakdown[report.MappingIncompatible]},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	mappings := "Mappings"
	if _, err := f.NewSheet(mappings); err != nil {
		return nil, fmt.Errorf("failed to add mappings sheet: %w", err)
	}
	header := make([]interface{}, len(mappingHeader))
	for i, h := range mappingHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(mappings, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write mappings header: %w", err)
	}
	for i, m := range rep.Mappings {
		target := ""
		if m.TargetEquivalent != nil {
			target = *m.TargetEquivalent
		}
		row := []interface{}{
			rep.WorkflowID.String(),
			m.SourceActivity,
			string(m.Category),
			target,
			string(m.MappingType),
			m.EffortHours,
			m.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(mappings, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write mapping row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
