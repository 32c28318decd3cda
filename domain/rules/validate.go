package rules

import (
	"regexp"
	"strings"

	"rpascope/domain/core"
)

// Validate checks that a rule definition is publishable. Regex patterns are
// compiled here so an invalid pattern fails rule activation up front instead
// of silently no-oping during evaluation.
func (r *Rule) Validate() error {
	id := r.RuleID.String()
	if strings.TrimSpace(r.Name) == "" {
		return core.NewRuleInvalidError(id, "name is required")
	}
	if r.Severity.Level() == 0 {
		return core.NewRuleInvalidError(id, "unknown severity "+string(r.Severity))
	}

	switch r.Check.Kind {
	case CheckRegex:
		if strings.TrimSpace(r.Check.Pattern) == "" {
			return core.NewRuleInvalidError(id, "regex check requires a non-empty pattern")
		}
		if _, err := regexp.Compile(r.Check.Pattern); err != nil {
			return core.NewRuleInvalidError(id, "invalid regex pattern: "+err.Error())
		}
	case CheckActivityCount:
		if r.Check.ActivityCategory == "" {
			return core.NewRuleInvalidError(id, "activity_count check requires a category")
		}
		if r.Check.Threshold <= 0 {
			return core.NewRuleInvalidError(id, "activity_count check requires a positive threshold")
		}
	case CheckNestingDepth:
		if r.Check.Threshold <= 0 {
			return core.NewRuleInvalidError(id, "nesting_depth check requires a positive threshold")
		}
	case CheckCustom:
		if strings.TrimSpace(r.Check.EvaluatorID) == "" {
			return core.NewRuleInvalidError(id, "custom check requires an evaluator id")
		}
	default:
		return core.NewRuleInvalidError(id, "unknown check kind "+string(r.Check.Kind))
	}
	return nil
}

// CompiledPattern returns the compiled regex for a regex rule. Callers must
// have validated the rule first; a compile failure here is reported as a
// diagnostic by the engine, never a panic.
func (r *Rule) CompiledPattern() (*regexp.Regexp, error) {
	return regexp.Compile(r.Check.Pattern)
}
