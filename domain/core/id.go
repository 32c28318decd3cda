package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	WorkflowID ID
	RuleID     ID
	ReportID   ID
	TenantID   ID
)

// String conversions for domain IDs
func (id WorkflowID) String() string { return ID(id).String() }
func (id RuleID) String() string     { return ID(id).String() }
func (id ReportID) String() string   { return ID(id).String() }
func (id TenantID) String() string   { return ID(id).String() }

// ParseWorkflowID parses a string into WorkflowID
func ParseWorkflowID(s string) (WorkflowID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("workflow ID cannot be empty")
	}
	return WorkflowID(s), nil
}

// ParseRuleID parses a string into RuleID
func ParseRuleID(s string) (RuleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("rule ID cannot be empty")
	}
	return RuleID(s), nil
}

// ParseTenantID parses a string into TenantID
func ParseTenantID(s string) (TenantID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("tenant ID cannot be empty")
	}
	return TenantID(s), nil
}
