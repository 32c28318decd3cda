package export

import (
	"encoding/json"
	"fmt"

	"rpascope/domain/rules"
)

// JSON renders any report as indented JSON. encoding/json sorts map keys, so
// repeated exports of the same report are byte-identical.
func (e *Exporter) JSON(rep interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// RulesJSON renders a rule set as the JSON interchange format accepted by
// the rule import
func (e *Exporter) RulesJSON(ruleSet []rules.Rule) ([]byte, error) {
	return e.JSON(ruleSet)
}
