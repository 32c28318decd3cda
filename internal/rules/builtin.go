package ruleengine

import (
	"rpascope/domain/core"
	"rpascope/domain/rules"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
)

// BuiltinRules returns the read-only built-in rule set. IDs are stable
// strings so tenant deployments can reference them in filters and bulk
// actions; versions only change with the shipped defaults.
func BuiltinRules() []rules.Rule {
	return []rules.Rule{
		{
			RuleID:         core.RuleID("builtin.missing-try-catch"),
			Name:           "Missing try-catch",
			Category:       rules.CategoryReliability,
			Severity:       rules.SeverityCritical,
			Check:          rules.CustomCheck(EvaluatorMissingTryCatch),
			Platform:       workflow.PlatformBoth,
			IsActive:       true,
			BuiltIn:        true,
			Recommendation: "Wrap the main sequence in a try-catch (UiPath) or add a recover stage (Blue Prism)",
			Impact:         "Unhandled exceptions abort the whole run and leave target applications in an unknown state",
			Version:        1,
		},
		{
			RuleID:         core.RuleID("builtin.hardcoded-delay"),
			Name:           "Hard-coded delay",
			Category:       rules.CategoryReliability,
			Severity:       rules.SeverityMajor,
			Check:          rules.CustomCheck(EvaluatorHardcodedDelay),
			Platform:       workflow.PlatformBoth,
			IsActive:       true,
			BuiltIn:        true,
			Recommendation: "Replace fixed delays with element-exists or activity-completed waits",
			Impact:         "Fixed sleeps slow every run and still fail when the target is slower than expected",
			Version:        1,
		},
		{
			RuleID:         core.RuleID("builtin.deep-nesting"),
			Name:           "Excessive nesting depth",
			Category:       rules.CategoryMaintainability,
			Severity:       rules.SeverityMajor,
			Check:          rules.NestingDepthCheck(5),
			Platform:       workflow.PlatformBoth,
			IsActive:       true,
			BuiltIn:        true,
			Recommendation: "Extract nested branches into invoked workflows",
			Impact:         "Deeply nested flows are hard to review and to migrate",
			Version:        1,
		},
		{
			RuleID:         core.RuleID("builtin.ui-heavy"),
			Name:           "UI-automation heavy workflow",
			Category:       rules.CategoryPerformance,
			Severity:       rules.SeverityMedium,
			Check:          rules.ActivityCountCheck(taxonomy.CategoryUIAutomation, 20),
			Platform:       workflow.PlatformBoth,
			IsActive:       true,
			BuiltIn:        true,
			Recommendation: "Prefer API or database access over large surface-automation sequences",
			Impact:         "Surface automation is the slowest and most fragile activity class",
			Version:        1,
		},
		{
			RuleID:         core.RuleID("builtin.oversized-workflow"),
			Name:           "Oversized workflow",
			Category:       rules.CategoryMaintainability,
			Severity:       rules.SeverityMedium,
			Check:          rules.ActivityCountCheck(taxonomy.CategoryControlFlow, 40),
			Platform:       workflow.PlatformBoth,
			IsActive:       true,
			BuiltIn:        true,
			Recommendation: "Split the workflow into smaller invoked workflows",
			Impact:         "Monolithic flows cost more to test and to migrate",
			Version:        1,
		},
		{
			RuleID:         core.RuleID("builtin.default-display-name"),
			Name:           "Default display name",
			Category:       rules.CategoryNaming,
			Severity:       rules.SeverityMinor,
			Check:          rules.RegexCheck(`^(Sequence|Assign|If|Flowchart|Click|TypeInto)\s*\d*$`),
			Platform:       workflow.PlatformUiPath,
			IsActive:       true,
			BuiltIn:        true,
			Recommendation: "Rename activities to describe what they do",
			Impact:         "Default names make reviews and migration mapping ambiguous",
			Version:        1,
		},
		{
			RuleID:         core.RuleID("builtin.copy-paste-name"),
			Name:           "Copy-pasted activity",
			Category:       rules.CategoryNaming,
			Severity:       rules.SeverityInfo,
			Check:          rules.RegexCheck(`(?i)^copy of `),
			Platform:       workflow.PlatformBoth,
			IsActive:       true,
			BuiltIn:        true,
			Recommendation: "Rename or deduplicate copied activities",
			Impact:         "Leftover copies usually indicate unfinished refactoring",
			Version:        1,
		},
		{
			RuleID:         core.RuleID("builtin.missing-logging"),
			Name:           "No logging activities",
			Category:       rules.CategoryBestPractice,
			Severity:       rules.SeverityMinor,
			Check:          rules.CustomCheck(EvaluatorMissingLogging),
			Platform:       workflow.PlatformBoth,
			IsActive:       false,
			BuiltIn:        true,
			Recommendation: "Log entry/exit and error paths",
			Impact:         "Unlogged workflows are expensive to support in production",
			Version:        1,
		},
	}
}
