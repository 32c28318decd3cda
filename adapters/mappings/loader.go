// Package mappings loads platform mapping-table overlays from XLSX or CSV
// workbooks. Loaded rows are overlaid on the built-in tables at startup.
package mappings

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"rpascope/domain/report"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
	"rpascope/ports"
)

// Expected column order of a mapping workbook. A type_name of the form
// "category:<name>" defines a category-level default row.
var expectedHeader = []string{
	"source_platform", "target_platform", "type_name",
	"target_equivalent", "mapping_type", "effort_hours", "notes",
}

// Loader reads mapping tables from a workbook file
type Loader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewLoader creates a loader for an .xlsx or .csv mapping workbook
func NewLoader(filePath string) *Loader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Loader{filePath: filePath, fileType: fileType}
}

// Load parses the workbook into mapping tables, one per platform pair found
func (l *Loader) Load() ([]*ports.MappingTable, error) {
	if _, err := os.Stat(l.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("mapping workbook not found: %s", l.filePath)
	}

	var rows [][]string
	var err error
	switch l.fileType {
	case "csv":
		rows, err = l.readCSV()
	default:
		rows, err = l.readXLSX()
	}
	if err != nil {
		return nil, err
	}
	return buildTables(rows)
}

func (l *Loader) readCSV() ([][]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping workbook: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(expectedHeader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping CSV: %w", err)
	}
	return rows, nil
}

func (l *Loader) readXLSX() ([][]string, error) {
	f, err := excelize.OpenFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("mapping workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping sheet: %w", err)
	}
	return rows, nil
}

func buildTables(rows [][]string) ([]*ports.MappingTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("mapping workbook is empty")
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	type pair struct{ source, target workflow.Platform }
	tables := make(map[pair]*ports.MappingTable)

	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < len(expectedHeader) {
			return nil, fmt.Errorf("mapping row %d has %d fields, want %d", line, len(row), len(expectedHeader))
		}
		source, err := workflow.ParsePlatform(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("mapping row %d: %w", line, err)
		}
		target, err := workflow.ParsePlatform(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("mapping row %d: %w", line, err)
		}
		mappingType, err := parseMappingType(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, fmt.Errorf("mapping row %d: %w", line, err)
		}
		effort, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return nil, fmt.Errorf("mapping row %d: invalid effort_hours %q", line, row[5])
		}

		key := pair{source, target}
		table, ok := tables[key]
		if !ok {
			table = &ports.MappingTable{
				Source:     source,
				Target:     target,
				ByType:     make(map[string]ports.MappingEntry),
				ByCategory: make(map[taxonomy.Category]ports.MappingEntry),
			}
			tables[key] = table
		}

		entry := ports.MappingEntry{
			TargetEquivalent: strings.TrimSpace(row[3]),
			MappingType:      mappingType,
			EffortHours:      effort,
			Notes:            strings.TrimSpace(row[6]),
		}
		typeName := strings.TrimSpace(row[2])
		if category, ok := strings.CutPrefix(typeName, "category:"); ok {
			table.ByCategory[taxonomy.Category(category)] = entry
		} else {
			table.ByType[typeName] = entry
		}
	}

	out := make([]*ports.MappingTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, t)
	}
	return out, nil
}

func checkHeader(header []string) error {
	if len(header) < len(expectedHeader) {
		return fmt.Errorf("mapping workbook header has %d columns, want %d", len(header), len(expectedHeader))
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("mapping workbook column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseMappingType(s string) (report.MappingType, error) {
	switch report.MappingType(s) {
	case report.MappingDirect, report.MappingPartial, report.MappingComplex, report.MappingIncompatible:
		return report.MappingType(s), nil
	default:
		return "", fmt.Errorf("unknown mapping type %q", s)
	}
}
