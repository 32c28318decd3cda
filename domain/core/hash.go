package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	// RulesetHash fingerprints the set of active rule versions used in a review.
	RulesetHash Hash
	// StructureHash fingerprints a parsed workflow structure.
	StructureHash Hash
)

// Constructors
func NewRulesetHash(data []byte) RulesetHash     { return RulesetHash(NewHash(data)) }
func NewStructureHash(data []byte) StructureHash { return StructureHash(NewHash(data)) }

// String conversions
func (h RulesetHash) String() string   { return Hash(h).String() }
func (h StructureHash) String() string { return Hash(h).String() }

// ComputeRulesetHash fingerprints rule identities and versions so that two
// reviews run against the same active ruleset produce the same cache key.
func ComputeRulesetHash(ruleVersions map[string]int) RulesetHash {
	keys := make([]string, 0, len(ruleVersions))
	for k := range ruleVersions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString(fmt.Sprintf(":%d;", ruleVersions[key]))
	}
	return NewRulesetHash([]byte(data.String()))
}
