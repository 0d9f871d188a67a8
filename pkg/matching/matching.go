// Package matching implements the prefab path patterns used by filter
// rule sets: a pattern is either an exact prefab path or a prefix pattern
// ending in "/*".
package matching

import "strings"

// WildcardSuffix marks a pattern as a prefix match against the prefab path.
const WildcardSuffix = "/*"

// Matches reports whether typeID is matched by at least one pattern.
// Matching is exact-case: either strict equality, or, for patterns ending
// in "/*", a prefix test with the trailing "*" stripped. An empty pattern
// list never matches, and an empty typeID is never matched.
func Matches(typeID string, patterns []string) bool {
	if typeID == "" || len(patterns) == 0 {
		return false
	}
	for _, pattern := range patterns {
		if MatchesOne(typeID, pattern) {
			return true
		}
	}
	return false
}

// MatchesOne tests a single pattern against typeID.
func MatchesOne(typeID, pattern string) bool {
	if strings.HasSuffix(pattern, WildcardSuffix) {
		return strings.HasPrefix(typeID, pattern[:len(pattern)-1])
	}
	return typeID == pattern
}
