package ports

import (
	"context"

	"rpascope/domain/core"
	"rpascope/domain/rules"
	"rpascope/domain/workflow"
)

// RuleFilter narrows List results; zero values mean "any"
type RuleFilter struct {
	Platform workflow.Platform
	Category rules.Category
	Severity rules.Severity
	// ActiveOnly limits to active rules when true.
	ActiveOnly bool
	// BuiltIn filters on origin when non-nil.
	BuiltIn *bool
	// TenantID scopes custom rules; built-in rules are visible to all tenants.
	TenantID core.TenantID
}

// BulkAction names a bulk rule operation
type BulkAction string

const (
	BulkActivate   BulkAction = "activate"
	BulkDeactivate BulkAction = "deactivate"
	BulkDelete     BulkAction = "delete"
)

// RuleStore persists review rules. Built-in rules are read-only to tenants:
// Update/Delete/SetActive on a built-in rule must fail with
// core.ErrRuleReadOnly. Create and Update validate the rule (including regex
// compilation) before persisting.
type RuleStore interface {
	Create(ctx context.Context, rule *rules.Rule) error
	Update(ctx context.Context, rule *rules.Rule) error
	Delete(ctx context.Context, id core.RuleID) error
	SetActive(ctx context.Context, id core.RuleID, active bool) error
	Get(ctx context.Context, id core.RuleID) (*rules.Rule, error)
	List(ctx context.Context, filter RuleFilter) ([]rules.Rule, error)
	Bulk(ctx context.Context, action BulkAction, ids []core.RuleID) (int, error)
}
