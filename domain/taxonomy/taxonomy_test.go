package taxonomy

import (
	"testing"
)

// TestClassifyKnownTypes tests representative entries from both vendor
// vocabularies
func TestClassifyKnownTypes(t *testing.T) {
	tests := []struct {
		typeName string
		expected Category
	}{
		{"Sequence", CategoryControlFlow},
		{"ForEach", CategoryControlFlow},
		{"Assign", CategoryDataManipulation},
		{"Click", CategoryUIAutomation},
		{"ReadRange", CategoryExcel},
		{"InvokeWorkflowFile", CategoryWorkflowInvocation},
		{"TryCatch", CategoryErrorHandling},
		{"LogMessage", CategoryLogging},
		// Blue Prism stages
		{"Decision", CategoryControlFlow},
		{"Calculation", CategoryDataManipulation},
		{"Navigate", CategoryUIAutomation},
		{"ExcelVBO", CategoryExcel},
		{"SubSheet", CategoryWorkflowInvocation},
		{"Recover", CategoryErrorHandling},
		{"Note", CategoryLogging},
	}

	for _, test := range tests {
		if got := Classify(test.typeName); got != test.expected {
			t.Errorf("Classify(%q) = %s, want %s", test.typeName, got, test.expected)
		}
	}
}

// TestClassifyUnknownFallsBackToOther tests the total-partition guarantee:
// unknown names classify to Other, never an error or a drop
func TestClassifyUnknownFallsBackToOther(t *testing.T) {
	for _, name := range []string{"SomeVendorWidget", "", "CustomActivity42"} {
		if got := Classify(name); got != CategoryOther {
			t.Errorf("Classify(%q) = %s, want %s", name, got, CategoryOther)
		}
		if IsKnown(name) {
			t.Errorf("IsKnown(%q) = true, want false", name)
		}
	}
}

// TestClassifyCaseSensitive tests that lookups are exact case-sensitive
// matches
func TestClassifyCaseSensitive(t *testing.T) {
	if got := Classify("sequence"); got != CategoryOther {
		t.Errorf("Classify(\"sequence\") = %s, want %s", got, CategoryOther)
	}
	if got := Classify("CLICK"); got != CategoryOther {
		t.Errorf("Classify(\"CLICK\") = %s, want %s", got, CategoryOther)
	}
}

// TestClassifyPartition tests that every registry entry lands in a canonical
// category listed by Categories
func TestClassifyPartition(t *testing.T) {
	canonical := make(map[Category]bool)
	for _, c := range Categories() {
		canonical[c] = true
	}

	for name, category := range registry {
		if !canonical[category] {
			t.Errorf("Registry entry %q maps to unlisted category %s", name, category)
		}
	}
}

// TestIsExceptionHandler tests the handler vocabulary for both platforms
func TestIsExceptionHandler(t *testing.T) {
	for _, name := range []string{"TryCatch", "GlobalHandler", "Recover"} {
		if !IsExceptionHandler(name) {
			t.Errorf("Expected %q to establish an exception handling scope", name)
		}
	}
	for _, name := range []string{"Throw", "Sequence", "Resume"} {
		if IsExceptionHandler(name) {
			t.Errorf("Did not expect %q to establish an exception handling scope", name)
		}
	}
}

// TestIsInvocation tests invocation detection
func TestIsInvocation(t *testing.T) {
	if !IsInvocation("InvokeWorkflowFile") || !IsInvocation("SubSheet") {
		t.Error("Expected invocation activities to be detected")
	}
	if IsInvocation("Assign") {
		t.Error("Did not expect Assign to count as an invocation")
	}
}
