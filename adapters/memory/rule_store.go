// Package memory provides in-process store implementations used by tests
// and the zero-configuration dev mode.
package memory

import (
	"context"
	"sort"
	"sync"

	"rpascope/domain/core"
	"rpascope/domain/rules"
	"rpascope/ports"
)

// RuleStore is a map-backed rule store
type RuleStore struct {
	mu    sync.RWMutex
	rules map[core.RuleID]rules.Rule
}

// NewRuleStore creates a store seeded with the given rules (typically the
// built-in set)
func NewRuleStore(seed []rules.Rule) *RuleStore {
	s := &RuleStore{rules: make(map[core.RuleID]rules.Rule)}
	for _, r := range seed {
		s.rules[r.RuleID] = r
	}
	return s
}

// Create validates and stores a new rule
func (s *RuleStore) Create(_ context.Context, rule *rules.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rules[rule.RuleID]; exists {
		return core.NewRuleInvalidError(rule.RuleID.String(), "rule already exists")
	}
	if rule.Version == 0 {
		rule.Version = 1
	}
	s.rules[rule.RuleID] = *rule
	return nil
}

// Update validates and replaces an existing custom rule, bumping its version
func (s *RuleStore) Update(_ context.Context, rule *rules.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rules[rule.RuleID]
	if !ok {
		return core.NewNotFoundError("rule", rule.RuleID.String())
	}
	if existing.BuiltIn {
		return core.ErrRuleReadOnly
	}
	rule.BuiltIn = false
	rule.Version = existing.Version + 1
	s.rules[rule.RuleID] = *rule
	return nil
}

// Delete removes a custom rule
func (s *RuleStore) Delete(_ context.Context, id core.RuleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rules[id]
	if !ok {
		return core.NewNotFoundError("rule", id.String())
	}
	if existing.BuiltIn {
		return core.ErrRuleReadOnly
	}
	delete(s.rules, id)
	return nil
}

// SetActive toggles a rule's active flag. Built-in rules may be toggled but
// not edited or deleted.
func (s *RuleStore) SetActive(_ context.Context, id core.RuleID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rules[id]
	if !ok {
		return core.NewNotFoundError("rule", id.String())
	}
	existing.IsActive = active
	s.rules[id] = existing
	return nil
}

// Get returns one rule by ID
func (s *RuleStore) Get(_ context.Context, id core.RuleID) (*rules.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing, ok := s.rules[id]
	if !ok {
		return nil, core.NewNotFoundError("rule", id.String())
	}
	return &existing, nil
}

// List returns rules matching the filter, ordered by rule ID for stable
// output
func (s *RuleStore) List(_ context.Context, filter ports.RuleFilter) ([]rules.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []rules.Rule
	for _, r := range s.rules {
		if matches(&r, filter) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RuleID < out[j].RuleID })
	return out, nil
}

// Bulk applies one action to many rules, returning the number affected.
// Rules that reject the action (read-only built-ins, missing IDs) are
// skipped, not fatal.
func (s *RuleStore) Bulk(ctx context.Context, action ports.BulkAction, ids []core.RuleID) (int, error) {
	affected := 0
	for _, id := range ids {
		var err error
		switch action {
		case ports.BulkActivate:
			err = s.SetActive(ctx, id, true)
		case ports.BulkDeactivate:
			err = s.SetActive(ctx, id, false)
		case ports.BulkDelete:
			err = s.Delete(ctx, id)
		default:
			return affected, core.NewRuleInvalidError(id.String(), "unknown bulk action "+string(action))
		}
		if err == nil {
			affected++
		}
	}
	return affected, nil
}

func matches(r *rules.Rule, filter ports.RuleFilter) bool {
	if filter.Platform != "" && r.Platform != filter.Platform {
		return false
	}
	if filter.Category != "" && r.Category != filter.Category {
		return false
	}
	if filter.Severity != "" && r.Severity != filter.Severity {
		return false
	}
	if filter.ActiveOnly && !r.IsActive {
		return false
	}
	if filter.BuiltIn != nil && r.BuiltIn != *filter.BuiltIn {
		return false
	}
	if filter.TenantID != "" && !r.BuiltIn && r.TenantID != filter.TenantID {
		return false
	}
	return true
}
