package citation

import (
	"regexp"

	"case-governance-be/pkg/policy"
)

// Markers look like [DOC:guideline_001]. This is a syntax check only: it
// proves the draft points at retrieved evidence, not that the claim is
// actually supported by the cited document.
var markerPattern = regexp.MustCompile(`\[DOC:(\w+)\]`)

// Validate scans content for citation markers. Valid means at least one
// marker is present. CitedDocs is deduplicated, preserving the order of
// first appearance.
func Validate(content string) *policy.ValidationResult {
	matches := markerPattern.FindAllStringSubmatch(content, -1)

	seen := make(map[string]struct{}, len(matches))
	cited := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		cited = append(cited, m[1])
	}

	return &policy.ValidationResult{
		HasCitations:  len(matches) > 0,
		CitationCount: len(matches),
		CitedDocs:     cited,
		Valid:         len(matches) > 0,
	}
}
