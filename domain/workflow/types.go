// Package workflow defines the parsed RPA workflow structure consumed by the
// analysis engines. Structures are produced by an upstream parser and treated
// as immutable snapshots here.
package workflow

import (
	"fmt"

	"rpascope/domain/core"
)

// Platform identifies the RPA vendor a workflow definition belongs to
type Platform string

const (
	PlatformUiPath    Platform = "uipath"
	PlatformBluePrism Platform = "blueprism"
	// PlatformBoth is only valid on rules, never on structures
	PlatformBoth Platform = "both"
)

// ParsePlatform validates a platform string from an external caller
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformUiPath, PlatformBluePrism:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownPlatform, s)
	}
}

// String returns the string representation
func (p Platform) String() string { return string(p) }

// ActivityNode is a single step in the workflow tree
type ActivityNode struct {
	TypeName    string            `json:"type_name"`
	DisplayName string            `json:"display_name,omitempty"`
	Children    []ActivityNode    `json:"children,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// Variable is a workflow-scoped value declaration
type Variable struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Scope      string `json:"scope"`
	UsageCount int    `json:"usage_count"`
}

// ArgumentDirection is the in/out/in-out direction of a workflow argument
type ArgumentDirection string

const (
	DirectionIn    ArgumentDirection = "in"
	DirectionOut   ArgumentDirection = "out"
	DirectionInOut ArgumentDirection = "in_out"
)

// Argument is a workflow interface parameter
type Argument struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Direction  ArgumentDirection `json:"direction"`
	UsageCount int               `json:"usage_count"`
}

// Structure is the immutable snapshot produced by the upstream parser.
// The tree is finite and acyclic (parser guarantee); consumers must still
// traverse iteratively and never assume a depth bound.
type Structure struct {
	WorkflowID core.WorkflowID `json:"workflow_id"`
	Platform   Platform        `json:"platform"`
	Activities []ActivityNode  `json:"activities"`
	Variables  []Variable      `json:"variables"`
	Arguments  []Argument      `json:"arguments"`
}

// IsEmpty reports whether the parser yielded no activities at all. Callers
// surface this as a parser-incomplete diagnostic rather than fabricating data.
func (s *Structure) IsEmpty() bool {
	return len(s.Activities) == 0
}
