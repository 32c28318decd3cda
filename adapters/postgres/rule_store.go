package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rpascope/domain/core"
	"rpascope/domain/rules"
	"rpascope/ports"
)

// RuleStoreImpl implements ports.RuleStore for PostgreSQL
type RuleStoreImpl struct {
	db *sqlx.DB
}

// NewRuleStore creates a new PostgreSQL rule store
func NewRuleStore(db *sqlx.DB) ports.RuleStore {
	return &RuleStoreImpl{db: db}
}

// Create validates and inserts a new rule
func (r *RuleStoreImpl) Create(ctx context.Context, rule *rules.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	if rule.Version == 0 {
		rule.Version = 1
	}
	checkJSON, _ := json.Marshal(rule.Check)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_rules (
			rule_id, name, category, severity, check_spec, platform,
			is_active, built_in, recommendation, impact, version, tenant_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rule.RuleID, rule.Name, rule.Category, rule.Severity, checkJSON, rule.Platform,
		rule.IsActive, rule.BuiltIn, rule.Recommendation, rule.Impact, rule.Version,
		nullable(string(rule.TenantID)))
	if err != nil {
		return fmt.Errorf("failed to insert rule %s: %w", rule.RuleID, err)
	}
	return nil
}

// Update validates and replaces a custom rule, bumping its version
func (r *RuleStoreImpl) Update(ctx context.Context, rule *rules.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	existing, err := r.Get(ctx, rule.RuleID)
	if err != nil {
		return err
	}
	if existing.BuiltIn {
		return core.ErrRuleReadOnly
	}
	checkJSON, _ := json.Marshal(rule.Check)

	_, err = r.db.ExecContext(ctx, `
		UPDATE review_rules SET
			name = $2, category = $3, severity = $4, check_spec = $5,
			platform = $6, is_active = $7, recommendation = $8, impact = $9,
			version = version + 1
		WHERE rule_id = $1 AND built_in = FALSE`,
		rule.RuleID, rule.Name, rule.Category, rule.Severity, checkJSON,
		rule.Platform, rule.IsActive, rule.Recommendation, rule.Impact)
	if err != nil {
		return fmt.Errorf("failed to update rule %s: %w", rule.RuleID, err)
	}
	return nil
}

// Delete removes a custom rule
func (r *RuleStoreImpl) Delete(ctx context.Context, id core.RuleID) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.BuiltIn {
		return core.ErrRuleReadOnly
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM review_rules WHERE rule_id = $1 AND built_in = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", id, err)
	}
	return nil
}

// SetActive toggles a rule's active flag
func (r *RuleStoreImpl) SetActive(ctx context.Context, id core.RuleID, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE review_rules SET is_active = $2 WHERE rule_id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to toggle rule %s: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return core.NewNotFoundError("rule", id.String())
	}
	return nil
}

// Get returns one rule by ID
func (r *RuleStoreImpl) Get(ctx context.Context, id core.RuleID) (*rules.Rule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT rule_id, name, category, severity, check_spec, platform,
		       is_active, built_in, recommendation, impact, version, tenant_id
		FROM review_rules WHERE rule_id = $1`, id)
	rule, err := scanRule(row)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("rule", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rule %s: %w", id, err)
	}
	return rule, nil
}

// List returns rules matching the filter, ordered by rule ID
func (r *RuleStoreImpl) List(ctx context.Context, filter ports.RuleFilter) ([]rules.Rule, error) {
	query := `
		SELECT rule_id, name, category, severity, check_spec, platform,
		       is_active, built_in, recommendation, impact, version, tenant_id
		FROM review_rules WHERE 1=1`
	var args []interface{}
	idx := 1
	add := func(clause string, value interface{}) {
		query += fmt.Sprintf(" AND %s $%d", clause, idx)
		args = append(args, value)
		idx++
	}

	if filter.Platform != "" {
		add("platform =", string(filter.Platform))
	}
	if filter.Category != "" {
		add("category =", string(filter.Category))
	}
	if filter.Severity != "" {
		add("severity =", string(filter.Severity))
	}
	if filter.ActiveOnly {
		query += " AND is_active = TRUE"
	}
	if filter.BuiltIn != nil {
		add("built_in =", *filter.BuiltIn)
	}
	if filter.TenantID != "" {
		add("(built_in = TRUE OR tenant_id =", string(filter.TenantID))
		query += ")"
	}
	query += " ORDER BY rule_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	var out []rules.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		out = append(out, *rule)
	}
	return out, rows.Err()
}

// Bulk applies one action to many rules; rules rejecting the action are
// skipped
func (r *RuleStoreImpl) Bulk(ctx context.Context, action ports.BulkAction, ids []core.RuleID) (int, error) {
	affected := 0
	for _, id := range ids {
		var err error
		switch action {
		case ports.BulkActivate:
			err = r.SetActive(ctx, id, true)
		case ports.BulkDeactivate:
			err = r.SetActive(ctx, id, false)
		case ports.BulkDelete:
			err = r.Delete(ctx, id)
		default:
			return affected, core.NewRuleInvalidError(id.String(), "unknown bulk action "+string(action))
		}
		if err == nil {
			affected++
		}
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*rules.Rule, error) {
	var rule rules.Rule
	var checkJSON []byte
	var tenantID sql.NullString
	err := row.Scan(
		&rule.RuleID, &rule.Name, &rule.Category, &rule.Severity, &checkJSON,
		&rule.Platform, &rule.IsActive, &rule.BuiltIn, &rule.Recommendation,
		&rule.Impact, &rule.Version, &tenantID,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(checkJSON, &rule.Check); err != nil {
		return nil, fmt.Errorf("failed to unmarshal check_spec: %w", err)
	}
	if tenantID.Valid {
		rule.TenantID = core.TenantID(tenantID.String)
	}
	return &rule, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
