package migration

import (
	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
	"rpascope/ports"
)

// StaticProvider serves mapping tables from an in-process table set. The
// built-in UiPath<->Blue Prism tables ship with the engine; deployments may
// overlay rows loaded from a workbook (adapters/mappings).
type StaticProvider struct {
	tables map[pairKey]*ports.MappingTable
}

type pairKey struct {
	source workflow.Platform
	target workflow.Platform
}

// NewStaticProvider creates a provider over the given tables
func NewStaticProvider(tables ...*ports.MappingTable) *StaticProvider {
	p := &StaticProvider{tables: make(map[pairKey]*ports.MappingTable)}
	for _, t := range tables {
		p.tables[pairKey{t.Source, t.Target}] = t
	}
	return p
}

// NewBuiltinProvider creates a provider with the shipped platform pairs
func NewBuiltinProvider() *StaticProvider {
	return NewStaticProvider(UiPathToBluePrism(), BluePrismToUiPath())
}

// Table resolves the mapping table for a platform pair
func (p *StaticProvider) Table(source, target workflow.Platform) (*ports.MappingTable, error) {
	if t, ok := p.tables[pairKey{source, target}]; ok {
		return t, nil
	}
	return nil, core.NewPlatformPairError(source.String(), target.String())
}

// Overlay replaces or adds rows of an existing table (used by the workbook
// loader); a pair not yet present is added wholesale.
func (p *StaticProvider) Overlay(table *ports.MappingTable) {
	key := pairKey{table.Source, table.Target}
	existing, ok := p.tables[key]
	if !ok {
		p.tables[key] = table
		return
	}
	for name, entry := range table.ByType {
		existing.ByType[name] = entry
	}
	for cat, entry := range table.ByCategory {
		existing.ByCategory[cat] = entry
	}
	if table.IncompatibleEffortHours > 0 {
		existing.IncompatibleEffortHours = table.IncompatibleEffortHours
	}
}

// Effort-hour constants for the built-in tables: direct mappings are the
// cheapest, incompatible activities the most expensive.
const (
	effortDirect       = 0.5
	effortPartial      = 2
	effortComplex      = 6
	effortIncompatible = 12
)

func direct(target string) ports.MappingEntry {
	return ports.MappingEntry{TargetEquivalent: target, MappingType: report.MappingDirect, EffortHours: effortDirect}
}

func partial(target, notes string) ports.MappingEntry {
	return ports.MappingEntry{TargetEquivalent: target, MappingType: report.MappingPartial, EffortHours: effortPartial, Notes: notes}
}

func complexEntry(target, notes string) ports.MappingEntry {
	return ports.MappingEntry{TargetEquivalent: target, MappingType: report.MappingComplex, EffortHours: effortComplex, Notes: notes}
}

// UiPathToBluePrism returns the built-in UiPath -> Blue Prism table
func UiPathToBluePrism() *ports.MappingTable {
	return &ports.MappingTable{
		Source: workflow.PlatformUiPath,
		Target: workflow.PlatformBluePrism,
		ByType: map[string]ports.MappingEntry{
			"Sequence":              direct("Page"),
			"Flowchart":             direct("Page"),
			"If":                    direct("Decision"),
			"Switch":                partial("ChoiceStart", "Blue Prism choices need explicit choice/end stages per branch"),
			"While":                 direct("LoopStart"),
			"DoWhile":               partial("LoopStart", "Blue Prism loops test at the top; restructure the condition"),
			"ForEach":               direct("LoopStart"),
			"Assign":                direct("Calculation"),
			"MultipleAssign":        direct("MultipleCalculation"),
			"BuildDataTable":        direct("Collection"),
			"ForEachRow":            direct("LoopStart"),
			"AddDataRow":            direct("Collection"),
			"Click":                 direct("Navigate"),
			"DoubleClick":           direct("Navigate"),
			"TypeInto":              direct("Write"),
			"GetText":               direct("Read"),
			"ElementExists":         partial("Wait", "express as a wait stage with an exists condition"),
			"SendHotkey":            partial("Navigate", "use global send keys on the attached application"),
			"OpenBrowser":           partial("Navigate", "requires a browser launch action in an object"),
			"ExcelApplicationScope": partial("ExcelVBO", "attach the Excel VBO and manage the workbook handle"),
			"ReadRange":             direct("ExcelVBO"),
			"WriteRange":            direct("ExcelVBO"),
			"ReadCell":              direct("ExcelVBO"),
			"WriteCell":             direct("ExcelVBO"),
			"InvokeWorkflowFile":    direct("Process"),
			"InvokeProcess":         direct("Process"),
			"TryCatch":              partial("Recover", "recover/resume blocks cover a page, not an arbitrary scope"),
			"Throw":                 direct("Exception"),
			"Rethrow":               direct("Resume"),
			"RetryScope":            complexEntry("LoopStart", "rebuild retry semantics with a loop and recover stage"),
			"LogMessage":            direct("Note"),
			"WriteLine":             direct("Note"),
			"Delay":                 direct("WaitStart"),
			"InvokeMethod":          complexEntry("Code", "rewrite the method call inside a code stage"),
		},
		ByCategory: map[taxonomy.Category]ports.MappingEntry{
			taxonomy.CategoryControlFlow:      partial("Page", "general control flow restructure"),
			taxonomy.CategoryDataManipulation: partial("Calculation", "rebuild expression in Blue Prism calc syntax"),
			taxonomy.CategoryUIAutomation:     complexEntry("Navigate", "respy the element in a Blue Prism object"),
			taxonomy.CategoryExcel:            partial("ExcelVBO", "map to the closest Excel VBO action"),
			taxonomy.CategoryLogging:          direct("Note"),
			taxonomy.CategoryErrorHandling:    partial("Recover", "map onto page-level recover/resume"),
		},
		IncompatibleEffortHours: effortIncompatible,
	}
}

// BluePrismToUiPath returns the built-in Blue Prism -> UiPath table
func BluePrismToUiPath() *ports.MappingTable {
	return &ports.MappingTable{
		Source: workflow.PlatformBluePrism,
		Target: workflow.PlatformUiPath,
		ByType: map[string]ports.MappingEntry{
			"Page":                direct("Sequence"),
			"Decision":            direct("If"),
			"ChoiceStart":         partial("Switch", "collapse choice/end pairs into one switch"),
			"LoopStart":           direct("ForEach"),
			"Calculation":         direct("Assign"),
			"MultipleCalculation": direct("MultipleAssign"),
			"Collection":          direct("BuildDataTable"),
			"Navigate":            direct("Click"),
			"Read":                direct("GetText"),
			"Write":               direct("TypeInto"),
			"Code":                complexEntry("InvokeCode", "translate the code stage body to VB.NET/C# invoke code"),
			"ExcelVBO":            partial("ExcelApplicationScope", "pick the matching Excel activity per action"),
			"OLEDB":               complexEntry("ExecuteQuery", "rebuild the connection string and query activities"),
			"Process":             direct("InvokeProcess"),
			"SubSheet":            direct("InvokeWorkflowFile"),
			"Action":              partial("InvokeWorkflowFile", "map the object action onto a library workflow"),
			"Recover":             partial("TryCatch", "wrap the recovered region in a try-catch"),
			"Resume":              direct("Rethrow"),
			"Exception":           direct("Throw"),
			"Note":                direct("LogMessage"),
			"Anchor":              direct("Sequence"),
			"WaitStart":           direct("Delay"),
		},
		ByCategory: map[taxonomy.Category]ports.MappingEntry{
			taxonomy.CategoryControlFlow:      partial("Sequence", "general control flow restructure"),
			taxonomy.CategoryDataManipulation: partial("Assign", "rebuild expression in VB.NET syntax"),
			taxonomy.CategoryUIAutomation:     complexEntry("Click", "recapture selectors in UiPath"),
			taxonomy.CategoryExcel:            partial("ExcelApplicationScope", "map to the closest Excel activity"),
			taxonomy.CategoryLogging:          direct("LogMessage"),
			taxonomy.CategoryErrorHandling:    partial("TryCatch", "map recover/resume onto try-catch"),
		},
		IncompatibleEffortHours: effortIncompatible,
	}
}
