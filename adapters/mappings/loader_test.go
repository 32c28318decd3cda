package mappings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"rpascope/domain/report"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mappings.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return path
}

// TestLoadCSV tests parsing a CSV workbook with type rows and a category
// default row for two platform pairs
func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, `source_platform,target_platform,type_name,target_equivalent,mapping_type,effort_hours,notes
uipath,blueprism,Click,Navigate,direct,0.5,
uipath,blueprism,category:ui_automation,Navigate,complex,6,respy the element
blueprism,uipath,Navigate,Click,direct,0.5,
`)

	tables, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Tables = %d, want 2", len(tables))
	}

	found := false
	for _, table := range tables {
		if table.Source != workflow.PlatformUiPath || table.Target != workflow.PlatformBluePrism {
			continue
		}
		found = true
		if len(table.ByType) != 1 || len(table.ByCategory) != 1 {
			t.Errorf("Forward table has %d type rows and %d category rows, want 1 and 1",
				len(table.ByType), len(table.ByCategory))
		}
		entry, ok := table.ByType["Click"]
		if !ok || entry.TargetEquivalent != "Navigate" || entry.MappingType != report.MappingDirect {
			t.Errorf("Click entry = %+v", entry)
		}
		catEntry, ok := table.ByCategory[taxonomy.CategoryUIAutomation]
		if !ok || catEntry.MappingType != report.MappingComplex || catEntry.EffortHours != 6 {
			t.Errorf("Category entry = %+v", catEntry)
		}
	}
	if !found {
		t.Error("Expected a uipath -> blueprism table")
	}
}

// TestLoadXLSX tests parsing an XLSX workbook produced by excelize
func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"source_platform", "target_platform", "type_name", "target_equivalent", "mapping_type", "effort_hours", "notes"},
		{"uipath", "blueprism", "TypeInto", "Write", "direct", 0.5, ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("Failed to build workbook: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	_ = f.Close()

	tables, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Tables = %d, want 1", len(tables))
	}
	entry, ok := tables[0].ByType["TypeInto"]
	if !ok || entry.TargetEquivalent != "Write" {
		t.Errorf("TypeInto entry = %+v", entry)
	}
}

// TestLoadRejections tests the malformed-workbook failure modes
func TestLoadRejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "platform_from,platform_to,type,target,kind,hours,notes\n"},
		{"unknown platform", "source_platform,target_platform,type_name,target_equivalent,mapping_type,effort_hours,notes\nsap,blueprism,Click,Navigate,direct,0.5,\n"},
		{"unknown mapping type", "source_platform,target_platform,type_name,target_equivalent,mapping_type,effort_hours,notes\nuipath,blueprism,Click,Navigate,someday,0.5,\n"},
		{"bad effort", "source_platform,target_platform,type_name,target_equivalent,mapping_type,effort_hours,notes\nuipath,blueprism,Click,Navigate,direct,lots,\n"},
	}

	for _, test := range tests {
		path := writeCSV(t, test.content)
		if _, err := NewLoader(path).Load(); err == nil {
			t.Errorf("Expected %s to fail", test.name)
		}
	}
}

// TestLoadMissingFile tests the missing-workbook error
func TestLoadMissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/mappings.csv").Load(); err == nil {
		t.Error("Expected an error for a missing workbook")
	}
}
