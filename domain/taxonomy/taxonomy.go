// Package taxonomy maps raw RPA activity type names onto a small canonical
// category set. The registry is static: lookups are case-sensitive exact
// matches and unknown names always classify to Other, so the category
// breakdown partitions every activity with no silent drops.
package taxonomy

// Category is a canonical activity category
type Category string

const (
	CategoryControlFlow        Category = "control_flow"
	CategoryDataManipulation   Category = "data_manipulation"
	CategoryUIAutomation       Category = "ui_automation"
	CategoryExcel              Category = "excel"
	CategoryWorkflowInvocation Category = "workflow_invocation"
	CategoryErrorHandling      Category = "error_handling"
	CategoryLogging            Category = "logging"
	CategoryOther              Category = "other"
)

// Categories lists every canonical category in a stable order
func Categories() []Category {
	return []Category{
		CategoryControlFlow,
		CategoryDataManipulation,
		CategoryUIAutomation,
		CategoryExcel,
		CategoryWorkflowInvocation,
		CategoryErrorHandling,
		CategoryLogging,
		CategoryOther,
	}
}

// String returns the string representation
func (c Category) String() string { return string(c) }

// registry keys are the raw type names emitted by the UiPath XAML and
// Blue Prism XML parsers. The two vendor vocabularies do not collide, so a
// single table serves both platforms.
var registry = map[string]Category{
	// UiPath control flow
	"Sequence":     CategoryControlFlow,
	"Flowchart":    CategoryControlFlow,
	"If":           CategoryControlFlow,
	"Switch":       CategoryControlFlow,
	"While":        CategoryControlFlow,
	"DoWhile":      CategoryControlFlow,
	"ForEach":      CategoryControlFlow,
	"FlowDecision": CategoryControlFlow,
	"FlowSwitch":   CategoryControlFlow,
	"Parallel":     CategoryControlFlow,
	"Pick":         CategoryControlFlow,
	"Delay":        CategoryControlFlow,
	"Break":        CategoryControlFlow,
	"Continue":     CategoryControlFlow,

	// UiPath data manipulation
	"Assign":          CategoryDataManipulation,
	"MultipleAssign":  CategoryDataManipulation,
	"AddToCollection": CategoryDataManipulation,
	"BuildDataTable":  CategoryDataManipulation,
	"FilterDataTable": CategoryDataManipulation,
	"ForEachRow":      CategoryDataManipulation,
	"AddDataRow":      CategoryDataManipulation,
	"MergeDataTable":  CategoryDataManipulation,
	"SortDataTable":   CategoryDataManipulation,
	"InvokeMethod":    CategoryDataManipulation,

	// UiPath UI automation
	"Click":          CategoryUIAutomation,
	"DoubleClick":    CategoryUIAutomation,
	"TypeInto":       CategoryUIAutomation,
	"GetText":        CategoryUIAutomation,
	"GetAttribute":   CategoryUIAutomation,
	"ElementExists":  CategoryUIAutomation,
	"Hover":          CategoryUIAutomation,
	"SelectItem":     CategoryUIAutomation,
	"Check":          CategoryUIAutomation,
	"SendHotkey":     CategoryUIAutomation,
	"AttachWindow":   CategoryUIAutomation,
	"AttachBrowser":  CategoryUIAutomation,
	"OpenBrowser":    CategoryUIAutomation,
	"NavigateTo":     CategoryUIAutomation,
	"CloseTab":       CategoryUIAutomation,
	"SetText":        CategoryUIAutomation,
	"TakeScreenshot": CategoryUIAutomation,

	// UiPath Excel
	"ExcelApplicationScope": CategoryExcel,
	"ReadRange":             CategoryExcel,
	"WriteRange":            CategoryExcel,
	"ReadCell":              CategoryExcel,
	"WriteCell":             CategoryExcel,
	"AppendRange":           CategoryExcel,
	"ReadColumn":            CategoryExcel,
	"ReadRow":               CategoryExcel,
	"CreateTable":           CategoryExcel,
	"DeleteRange":           CategoryExcel,

	// UiPath workflow invocation
	"InvokeWorkflowFile":        CategoryWorkflowInvocation,
	"InvokeProcess":             CategoryWorkflowInvocation,
	"LaunchWorkflowInteractive": CategoryWorkflowInvocation,

	// UiPath error handling
	"TryCatch":      CategoryErrorHandling,
	"Throw":         CategoryErrorHandling,
	"Rethrow":       CategoryErrorHandling,
	"Retry":         CategoryErrorHandling,
	"RetryScope":    CategoryErrorHandling,
	"GlobalHandler": CategoryErrorHandling,

	// UiPath logging
	"LogMessage":   CategoryLogging,
	"WriteLine":    CategoryLogging,
	"Comment":      CategoryLogging,
	"CommentOut":   CategoryLogging,
	"AddLogFields": CategoryLogging,

	// Blue Prism stages
	"Decision":            CategoryControlFlow,
	"ChoiceStart":         CategoryControlFlow,
	"ChoiceEnd":           CategoryControlFlow,
	"LoopStart":           CategoryControlFlow,
	"LoopEnd":             CategoryControlFlow,
	"Anchor":              CategoryControlFlow,
	"WaitStart":           CategoryControlFlow,
	"WaitEnd":             CategoryControlFlow,
	"Calculation":         CategoryDataManipulation,
	"MultipleCalculation": CategoryDataManipulation,
	"Collection":          CategoryDataManipulation,
	"Data":                CategoryDataManipulation,
	"Navigate":            CategoryUIAutomation,
	"Read":                CategoryUIAutomation,
	"Write":               CategoryUIAutomation,
	"Code":                CategoryDataManipulation,
	"OLEDB":               CategoryExcel,
	"ExcelVBO":            CategoryExcel,
	"Process":             CategoryWorkflowInvocation,
	"SubSheet":            CategoryWorkflowInvocation,
	"Action":              CategoryWorkflowInvocation,
	"Recover":             CategoryErrorHandling,
	"Resume":              CategoryErrorHandling,
	"Exception":           CategoryErrorHandling,
	"Note":                CategoryLogging,
	"LogViewer":           CategoryLogging,
}

// Classify maps a raw activity type name to its canonical category.
// Unknown names classify to Other; this is never an error.
func Classify(typeName string) Category {
	if cat, ok := registry[typeName]; ok {
		return cat
	}
	return CategoryOther
}

// IsKnown reports whether the type name has an explicit registry entry
func IsKnown(typeName string) bool {
	_, ok := registry[typeName]
	return ok
}

// exception handler entry points per platform vocabulary
var exceptionHandlers = map[string]bool{
	"TryCatch":      true,
	"GlobalHandler": true,
	"Recover":       true,
}

// IsExceptionHandler reports whether the activity establishes an exception
// handling scope (used for handler-coverage metrics)
func IsExceptionHandler(typeName string) bool {
	return exceptionHandlers[typeName]
}

// IsInvocation reports whether the activity invokes another workflow
func IsInvocation(typeName string) bool {
	return Classify(typeName) == CategoryWorkflowInvocation
}
