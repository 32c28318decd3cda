// Package migration classifies each activity of a workflow against a target
// platform mapping table and aggregates compatibility and effort.
package migration

import (
	"fmt"

	"rpascope/domain/core"
	"rpascope/domain/report"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
	"rpascope/internal/config"
	"rpascope/ports"
)

// Engine produces migration reports from workflow structures
type Engine struct {
	provider ports.MappingProvider
	cfg      config.MigrationConfig
}

// NewEngine creates a migration engine over a mapping provider
func NewEngine(provider ports.MappingProvider, cfg config.MigrationConfig) *Engine {
	return &Engine{provider: provider, cfg: cfg}
}

// MapActivities maps every activity instance of the structure onto the
// target platform. Lookup priority per activity: exact type-name row, then
// category default, then incompatible with a nil target. A same-platform
// request returns a trivial all-direct report without consulting the table.
// An unknown platform pair fails with a configuration error naming the pair.
func (e *Engine) MapActivities(structure *workflow.Structure, source, target workflow.Platform) (*report.MigrationReport, error) {
	if structure == nil {
		return nil, fmt.Errorf("migration analysis requires a workflow structure")
	}

	rep := &report.MigrationReport{
		ReportID:               core.ReportID(core.NewID()),
		WorkflowID:             structure.WorkflowID,
		SourcePlatform:         source,
		TargetPlatform:         target,
		CompatibilityBreakdown: make(map[report.MappingType]int),
		GeneratedAt:            core.Now(),
	}

	if source == target {
		e.selfMap(structure, rep)
		return rep, nil
	}

	table, err := e.provider.Table(source, target)
	if err != nil {
		return nil, err
	}

	workflow.Walk(structure.Activities, func(node *workflow.ActivityNode, _ int) bool {
		mapping := resolveMapping(table, node.TypeName)
		rep.Mappings = append(rep.Mappings, mapping)
		rep.CompatibilityBreakdown[mapping.MappingType]++
		rep.TotalEffortHours += mapping.EffortHours
		return true
	})

	rep.CompatibilityScore = e.compatibilityScore(rep.CompatibilityBreakdown, len(rep.Mappings))
	return rep, nil
}

// selfMap fills a trivial all-direct report: every activity maps to itself
// with zero effort and a perfect score.
func (e *Engine) selfMap(structure *workflow.Structure, rep *report.MigrationReport) {
	workflow.Walk(structure.Activities, func(node *workflow.ActivityNode, _ int) bool {
		target := node.TypeName
		rep.Mappings = append(rep.Mappings, report.MigrationMapping{
			SourceActivity:   node.TypeName,
			Category:         taxonomy.Classify(node.TypeName),
			TargetEquivalent: &target,
			MappingType:      report.MappingDirect,
			EffortHours:      0,
		})
		rep.CompatibilityBreakdown[report.MappingDirect]++
		return true
	})
	rep.CompatibilityScore = 100
}

// resolveMapping applies the lookup priority for one activity type
func resolveMapping(table *ports.MappingTable, typeName string) report.MigrationMapping {
	category := taxonomy.Classify(typeName)

	if entry, ok := table.ByType[typeName]; ok {
		return entryToMapping(typeName, category, entry)
	}
	if entry, ok := table.ByCategory[category]; ok {
		mapping := entryToMapping(typeName, category, entry)
		if mapping.Notes == "" {
			mapping.Notes = "category-level default mapping"
		}
		return mapping
	}
	return report.MigrationMapping{
		SourceActivity:   typeName,
		Category:         category,
		TargetEquivalent: nil,
		MappingType:      report.MappingIncompatible,
		EffortHours:      table.IncompatibleEffortHours,
		Notes:            "no equivalent on the target platform; manual redesign required",
	}
}

func entryToMapping(typeName string, category taxonomy.Category, entry ports.MappingEntry) report.MigrationMapping {
	target := entry.TargetEquivalent
	return report.MigrationMapping{
		SourceActivity:   typeName,
		Category:         category,
		TargetEquivalent: &target,
		MappingType:      entry.MappingType,
		EffortHours:      entry.EffortHours,
		Notes:            entry.Notes,
	}
}

// compatibilityScore is 100 * (w_direct*direct + w_partial*partial) / total.
// Complex and incompatible mappings contribute zero. An empty workflow
// scores 100 (nothing to migrate).
func (e *Engine) compatibilityScore(breakdown map[report.MappingType]int, total int) float64 {
	if total == 0 {
		return 100
	}
	weighted := e.cfg.DirectWeight*float64(breakdown[report.MappingDirect]) +
		e.cfg.PartialWeight*float64(breakdown[report.MappingPartial])
	return 100 * weighted / float64(total)
}
