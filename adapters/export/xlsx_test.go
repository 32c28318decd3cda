package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"rpascope/domain/core"
	"rpascope/domain/report"
)

// TestAnalysisXLSXOpens tests that the workbook round-trips through excelize
// with the expected sheets
func TestAnalysisXLSXOpens(t *testing.T) {
	data, err := testExporter().AnalysisXLSX(analysisReportWithFindings(3))
	if err != nil {
		t.Fatalf("AnalysisXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Workbook does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	found := map[string]bool{}
	for _, s := range sheets {
		found[s] = true
	}
	if !found["Summary"] || !found["Findings"] {
		t.Errorf("Sheets = %v, want Summary and Findings", sheets)
	}

	rows, err := f.GetRows("Findings")
	if err != nil {
		t.Fatalf("Failed to read Findings sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("Findings rows = %d, want header + 3", len(rows))
	}
}

// TestMigrationXLSXOpens tests the migration workbook shape
func TestMigrationXLSXOpens(t *testing.T) {
	target := "Navigate"
	rep := &report.MigrationReport{
		WorkflowID: core.WorkflowID("wf-1"),
		Mappings: []report.MigrationMapping{
			{SourceActivity: "Click", TargetEquivalent: &target, MappingType: report.MappingDirect, EffortHours: 0.5},
		},
		CompatibilityScore: 100,
	}

	data, err := testExporter().MigrationXLSX(rep)
	if err != nil {
		t.Fatalf("MigrationXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Mappings")
	if err != nil {
		t.Fatalf("Failed to read Mappings sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Mappings rows = %d, want header + 1", len(rows))
	}
}
