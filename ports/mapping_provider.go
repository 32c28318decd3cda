package ports

import (
	"rpascope/domain/report"
	"rpascope/domain/taxonomy"
	"rpascope/domain/workflow"
)

// MappingEntry is one row of a platform mapping table
type MappingEntry struct {
	TargetEquivalent string
	MappingType      report.MappingType
	EffortHours      float64
	Notes            string
}

// MappingTable holds the activity translations for one (source, target)
// platform pair: exact type-name rows plus category-level defaults.
type MappingTable struct {
	Source     workflow.Platform
	Target     workflow.Platform
	ByType     map[string]MappingEntry
	ByCategory map[taxonomy.Category]MappingEntry
	// IncompatibleEffortHours is charged per activity that matches neither
	// a type row nor a category default.
	IncompatibleEffortHours float64
}

// MappingProvider resolves the mapping table for a platform pair. An unknown
// pair returns core.ErrUnknownPlatformPair wrapped with the pair named.
type MappingProvider interface {
	Table(source, target workflow.Platform) (*MappingTable, error)
}
