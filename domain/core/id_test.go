package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParseWorkflowID tests workflow ID parsing
func TestParseWorkflowID(t *testing.T) {
	tests := []struct {
		input    string
		expected WorkflowID
		hasError bool
	}{
		{"wf-invoice-001", WorkflowID("wf-invoice-001"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseWorkflowID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input %q, but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input %q: %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestParseRuleID tests rule ID parsing
func TestParseRuleID(t *testing.T) {
	if _, err := ParseRuleID("builtin.missing-try-catch"); err != nil {
		t.Errorf("Unexpected error for valid rule ID: %v", err)
	}
	if _, err := ParseRuleID(""); err == nil {
		t.Error("Expected error for empty rule ID")
	}
}

// TestParseTenantID tests tenant ID parsing
func TestParseTenantID(t *testing.T) {
	if _, err := ParseTenantID("acme-corp"); err != nil {
		t.Errorf("Unexpected error for valid tenant ID: %v", err)
	}
	if _, err := ParseTenantID("  "); err == nil {
		t.Error("Expected error for blank tenant ID")
	}
}
