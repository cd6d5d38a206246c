package citation

import (
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantValid bool
		wantCount int
		wantDocs  []string
	}{
		{
			name:      "no markers",
			content:   "The patient reports improved sleep.",
			wantValid: false,
			wantCount: 0,
			wantDocs:  []string{},
		},
		{
			name:      "single marker",
			content:   "Follow the screening protocol [DOC:guideline_phq9].",
			wantValid: true,
			wantCount: 1,
			wantDocs:  []string{"guideline_phq9"},
		},
		{
			name:      "duplicates deduplicated in order",
			content:   "See [DOC:a1] and [DOC:b2], also [DOC:a1] again.",
			wantValid: true,
			wantCount: 3,
			wantDocs:  []string{"a1", "b2"},
		},
		{
			name:      "malformed markers are ignored",
			content:   "Bad refs [DOC:] and [DOC guideline] and (DOC:x).",
			wantValid: false,
			wantCount: 0,
			wantDocs:  []string{},
		},
		{
			name:      "hyphenated id is not a word token",
			content:   "[DOC:abc-def]",
			wantValid: false,
			wantCount: 0,
			wantDocs:  []string{},
		},
		{
			name:      "underscored id is accepted",
			content:   "[DOC:protocol_crisis]",
			wantValid: true,
			wantCount: 1,
			wantDocs:  []string{"protocol_crisis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.content)
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.CitationCount != tt.wantCount {
				t.Errorf("CitationCount = %d, want %d", got.CitationCount, tt.wantCount)
			}
			if !reflect.DeepEqual(got.CitedDocs, tt.wantDocs) {
				t.Errorf("CitedDocs = %v, want %v", got.CitedDocs, tt.wantDocs)
			}
			if got.HasCitations != tt.wantValid {
				t.Errorf("HasCitations = %v, want %v", got.HasCitations, tt.wantValid)
			}
		})
	}
}
