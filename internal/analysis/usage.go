package analysis

import (
	"fmt"
	"regexp"

	"gonum.org/v1/gonum/stat"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/workflow"
	"rpascope/internal/config"
)

// weakly typed declarations worth flagging on either platform
var weakTypes = map[string]bool{
	"Object":       true,
	"GenericValue": true,
}

// overly broad scopes; variables should live in the narrowest scope that works
var broadScopes = map[string]bool{
	"Global": true,
}

// UsageAnalyzer detects unused variables/arguments, type and scope problems
// and naming-convention violations. A variable is "unused" iff its usage
// count is zero; the upstream tally counts both reads and writes, so a
// write-only variable still counts as used.
type UsageAnalyzer struct {
	cfg    config.UsageConfig
	naming *regexp.Regexp
}

// NewUsageAnalyzer creates an analyzer; the naming convention pattern is
// validated here so a bad configuration fails construction, not evaluation.
func NewUsageAnalyzer(cfg config.UsageConfig) (*UsageAnalyzer, error) {
	naming, err := regexp.Compile(cfg.NamingPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid naming convention pattern %q: %w", cfg.NamingPattern, err)
	}
	return &UsageAnalyzer{cfg: cfg, naming: naming}, nil
}

// Analyze produces the usage report for one workflow structure
func (a *UsageAnalyzer) Analyze(structure *workflow.Structure) report.UsageReport {
	rep := report.UsageReport{
		ReportID:    core.ReportID(core.NewID()),
		GeneratedAt: core.Now(),
	}
	if structure == nil {
		rep.UsageScore, rep.TypeScore, rep.NamingScore = 100, 100, 100
		rep.OverallScore = 100
		return rep
	}
	rep.WorkflowID = structure.WorkflowID

	for _, v := range structure.Variables {
		if v.UsageCount == 0 {
			rep.UnusedVariables = append(rep.UnusedVariables, v.Name)
		}
		a.checkType(&rep, v.Name, "variable", v.Type)
		a.checkScope(&rep, v.Name, v.Scope)
		a.checkNaming(&rep, v.Name, "variable")
	}
	for _, arg := range structure.Arguments {
		if arg.UsageCount == 0 {
			rep.UnusedArguments = append(rep.UnusedArguments, arg.Name)
		}
		a.checkType(&rep, arg.Name, "argument", arg.Type)
		a.checkNaming(&rep, arg.Name, "argument")
	}

	unused := len(rep.UnusedVariables) + len(rep.UnusedArguments)
	rep.UsageScore = penalized(unused, a.cfg.IssuePenalty)
	rep.TypeScore = penalized(len(rep.TypeMismatches)+len(rep.ScopeIssues), a.cfg.IssuePenalty)
	rep.NamingScore = penalized(len(rep.NamingViolations), a.cfg.IssuePenalty)
	rep.OverallScore = WeightedMean(
		[]float64{rep.UsageScore, rep.TypeScore, rep.NamingScore},
		[]float64{a.cfg.UsageWeight, a.cfg.TypeWeight, a.cfg.NamingWeight},
	)
	return rep
}

func (a *UsageAnalyzer) checkType(rep *report.UsageReport, name, kind, typeName string) {
	switch {
	case typeName == "":
		rep.TypeMismatches = append(rep.TypeMismatches, report.UsageIssue{
			Name: name, Kind: kind,
			Message: fmt.Sprintf("%s %q has no declared type", kind, name),
		})
	case weakTypes[typeName]:
		rep.TypeMismatches = append(rep.TypeMismatches, report.UsageIssue{
			Name: name, Kind: kind,
			Message: fmt.Sprintf("%s %q is weakly typed as %s", kind, name, typeName),
		})
	}
}

func (a *UsageAnalyzer) checkScope(rep *report.UsageReport, name, scope string) {
	switch {
	case scope == "":
		rep.ScopeIssues = append(rep.ScopeIssues, report.UsageIssue{
			Name: name, Kind: "variable",
			Message: fmt.Sprintf("variable %q has no declared scope", name),
		})
	case broadScopes[scope]:
		rep.ScopeIssues = append(rep.ScopeIssues, report.UsageIssue{
			Name: name, Kind: "variable",
			Message: fmt.Sprintf("variable %q is scoped %s; narrow it to the containing scope", name, scope),
		})
	}
}

func (a *UsageAnalyzer) checkNaming(rep *report.UsageReport, name, kind string) {
	if !a.naming.MatchString(name) {
		rep.NamingViolations = append(rep.NamingViolations, report.UsageIssue{
			Name: name, Kind: kind,
			Message: fmt.Sprintf("%s %q does not match the naming convention %s", kind, name, a.naming.String()),
		})
	}
}

// penalized maps an issue count to a 0-100 sub-score by subtracting the
// configured penalty per issue, floored at zero.
func penalized(issues int, penalty float64) float64 {
	score := 100 - float64(issues)*penalty
	if score < 0 {
		return 0
	}
	return score
}

// WeightedMean is the sub-score combination function: the weighted arithmetic
// mean of the sub-scores under the configured weights. With equal weights it
// degenerates to the unweighted mean. It is exported so the combination can
// be tested independently of the analyzer.
func WeightedMean(scores, weights []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return stat.Mean(scores, weights)
}
