package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrWorkflowNotFound = fmt.Errorf("%w: workflow", ErrNotFound)
	ErrRuleNotFound     = fmt.Errorf("%w: rule", ErrNotFound)
	ErrReportNotFound   = fmt.Errorf("%w: report", ErrNotFound)

	// Rule errors
	ErrRuleInvalid      = errors.New("invalid rule definition")
	ErrRuleReadOnly     = errors.New("built-in rules are read-only")
	ErrUnknownEvaluator = errors.New("unknown custom evaluator")

	// Configuration errors
	ErrUnknownPlatform     = errors.New("unknown platform")
	ErrUnknownPlatformPair = errors.New("no mapping table for platform pair")

	// Input errors
	ErrParserIncomplete = errors.New("parser produced incomplete structure")
)

// NewNotFoundError builds a not-found error naming the resource and ID
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewPlatformPairError names the offending source/target pair so that callers
// never see an opaque failure
func NewPlatformPairError(source, target string) error {
	return fmt.Errorf("%w: %s -> %s", ErrUnknownPlatformPair, source, target)
}

// NewRuleInvalidError attaches the rule ID and reason to a validation failure
func NewRuleInvalidError(ruleID string, reason string) error {
	return fmt.Errorf("%w: rule %s: %s", ErrRuleInvalid, ruleID, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownPlatform) || errors.Is(err, ErrUnknownPlatformPair)
}

func IsRuleError(err error) bool {
	return errors.Is(err, ErrRuleInvalid) || errors.Is(err, ErrUnknownEvaluator)
}
