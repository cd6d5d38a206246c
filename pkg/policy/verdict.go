package policy

// Verdict is the structured outcome of any governance policy check.
// Policy rejections are expected, first-class results: callers branch on
// Allowed instead of handling an error.
type Verdict struct {
	Allowed           bool              `json:"allowed"`
	Reason            string            `json:"reason"`
	MissingConditions []string          `json:"missing_conditions,omitempty"`
	Blockers          []string          `json:"blockers,omitempty"`
	Validation        *ValidationResult `json:"validation_result,omitempty"`
}

// ValidationResult describes the citation syntax found in generated content.
type ValidationResult struct {
	HasCitations  bool     `json:"has_citations"`
	CitationCount int      `json:"citation_count"`
	CitedDocs     []string `json:"cited_docs"`
	Valid         bool     `json:"valid"`
}

func Allow(reason string) *Verdict {
	return &Verdict{Allowed: true, Reason: reason}
}

func Block(reason string, blockers ...string) *Verdict {
	return &Verdict{Allowed: false, Reason: reason, Blockers: blockers}
}
