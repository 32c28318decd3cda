package app

import (
	"context"
	"encoding/json"
	"fmt"

	"rpascope/adapters/export"
	"rpascope/domain/core"
	"rpascope/domain/rules"
	"rpascope/internal/logging"
	"rpascope/ports"
)

// RuleAdminService covers the rule store administration surface: CRUD
// passthrough plus JSON import and JSON/CSV export.
type RuleAdminService struct {
	store    ports.RuleStore
	exporter *export.Exporter
	logger   *logging.Logger
}

// NewRuleAdminService creates a rule admin service
func NewRuleAdminService(store ports.RuleStore, exporter *export.Exporter, logger *logging.Logger) *RuleAdminService {
	return &RuleAdminService{store: store, exporter: exporter, logger: logger}
}

// ImportResult reports what an import did
type ImportResult struct {
	Imported    int      `json:"imported"`
	Overwritten int      `json:"overwritten"`
	Skipped     []string `json:"skipped,omitempty"`
	Invalid     []string `json:"invalid,omitempty"`
}

// ImportJSON imports rules from the JSON interchange format. Name collisions
// with existing rules are skipped unless overwrite is set; overwriting a
// built-in rule is always refused. Invalid rules are reported, not fatal.
func (s *RuleAdminService) ImportJSON(ctx context.Context, data []byte, overwrite bool) (*ImportResult, error) {
	var incoming []rules.Rule
	if err := json.Unmarshal(data, &incoming); err != nil {
		return nil, fmt.Errorf("failed to parse rule import: %w", err)
	}

	existing, err := s.store.List(ctx, ports.RuleFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list existing rules: %w", err)
	}
	byName := make(map[string]rules.Rule, len(existing))
	for _, r := range existing {
		byName[r.Name] = r
	}

	result := &ImportResult{}
	for i := range incoming {
		rule := incoming[i]
		rule.BuiltIn = false
		if rule.RuleID == "" {
			rule.RuleID = core.RuleID(core.NewID())
		}

		if err := rule.Validate(); err != nil {
			result.Invalid = append(result.Invalid, fmt.Sprintf("%s: %v", rule.Name, err))
			continue
		}

		collision, collides := byName[rule.Name]
		switch {
		case !collides:
			if err := s.store.Create(ctx, &rule); err != nil {
				result.Invalid = append(result.Invalid, fmt.Sprintf("%s: %v", rule.Name, err))
				continue
			}
			result.Imported++
		case overwrite && !collision.BuiltIn:
			rule.RuleID = collision.RuleID
			if err := s.store.Update(ctx, &rule); err != nil {
				result.Invalid = append(result.Invalid, fmt.Sprintf("%s: %v", rule.Name, err))
				continue
			}
			result.Overwritten++
		default:
			// Collision without overwrite (or with a built-in): the existing
			// rule is left untouched.
			result.Skipped = append(result.Skipped, rule.Name)
		}
	}

	s.logger.Info("rule import: %d imported, %d overwritten, %d skipped, %d invalid",
		result.Imported, result.Overwritten, len(result.Skipped), len(result.Invalid))
	return result, nil
}

// ExportJSON exports rules matching the filter as JSON
func (s *RuleAdminService) ExportJSON(ctx context.Context, filter ports.RuleFilter) ([]byte, error) {
	ruleSet, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules for export: %w", err)
	}
	return s.exporter.RulesJSON(ruleSet)
}

// ExportCSV exports rules matching the filter as CSV
func (s *RuleAdminService) ExportCSV(ctx context.Context, filter ports.RuleFilter) ([]byte, error) {
	ruleSet, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules for export: %w", err)
	}
	return s.exporter.RulesCSV(ruleSet)
}
