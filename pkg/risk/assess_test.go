package risk

import (
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestAssessTiers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		severity *int
		wantTier Tier
	}{
		{
			name:     "neutral text stays low",
			text:     "I had a good day at work and went for a walk.",
			wantTier: TierLow,
		},
		{
			name:     "suicidal ideation forces critical",
			text:     "I want to end my life",
			wantTier: TierCritical,
		},
		{
			name:     "chinese crisis expression forces critical",
			text:     "我不想活了",
			wantTier: TierCritical,
		},
		{
			name:     "self harm forces critical",
			text:     "I have been cutting myself again",
			wantTier: TierCritical,
		},
		{
			name:     "hopelessness is high",
			text:     "Everything feels hopeless and I feel completely worthless.",
			wantTier: TierHigh,
		},
		{
			name:     "single medium match stays low",
			text:     "I feel so depressed lately.",
			wantTier: TierLow,
		},
		{
			name:     "two medium matches reach medium",
			text:     "I feel so depressed and my anxiety keeps me up at night.",
			wantTier: TierMedium,
		},
		{
			name:     "severity 8 forces critical without text triggers",
			text:     "Routine follow-up note.",
			severity: intPtr(8),
			wantTier: TierCritical,
		},
		{
			name:     "severity 7 forces high",
			text:     "Routine follow-up note.",
			severity: intPtr(7),
			wantTier: TierHigh,
		},
		{
			name:     "severity 5 forces medium",
			text:     "Routine follow-up note.",
			severity: intPtr(5),
			wantTier: TierMedium,
		},
		{
			name:     "severity 4 never elevates",
			text:     "Routine follow-up note.",
			severity: intPtr(4),
			wantTier: TierLow,
		},
		{
			name:     "out of range severity is ignored",
			text:     "Routine follow-up note.",
			severity: intPtr(99),
			wantTier: TierLow,
		},
		{
			name:     "severity cannot lower a critical text match",
			text:     "I want to end my life",
			severity: intPtr(1),
			wantTier: TierCritical,
		},
		{
			name:     "uppercase input is normalized",
			text:     "I WANT TO END MY LIFE",
			wantTier: TierCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.text, tt.severity)
			if got.Tier != tt.wantTier {
				t.Errorf("Assess(%q) tier = %s, want %s (triggers: %v)", tt.text, got.Tier, tt.wantTier, got.Triggers)
			}
		})
	}
}

func TestAssessTriggers(t *testing.T) {
	got := Assess("I want to end my life", nil)

	found := false
	for _, trig := range got.Triggers {
		if trig == "CRITICAL: Suicidal ideation detected" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected suicidal ideation trigger, got %v", got.Triggers)
	}

	if !strings.Contains(got.RecommendedAction, "988") {
		t.Errorf("critical action should carry the crisis line, got %q", got.RecommendedAction)
	}
	if !strings.Contains(got.Explanation, "NOT a diagnosis") {
		t.Errorf("explanation must state it is not a diagnosis, got %q", got.Explanation)
	}
}

func TestAssessSingleMediumRecordedButLow(t *testing.T) {
	got := Assess("I feel so depressed lately.", nil)

	if got.Tier != TierLow {
		t.Fatalf("tier = %s, want low", got.Tier)
	}
	if len(got.Triggers) != 1 {
		t.Fatalf("triggers = %v, want exactly one recorded medium match", got.Triggers)
	}
	if !strings.HasPrefix(got.Triggers[0], "MEDIUM: ") {
		t.Errorf("trigger %q should carry the MEDIUM prefix", got.Triggers[0])
	}
}

func TestAssessSeverityTriggerRecorded(t *testing.T) {
	got := Assess("Routine note.", intPtr(9))

	if got.Tier != TierCritical {
		t.Fatalf("tier = %s, want critical", got.Tier)
	}
	found := false
	for _, trig := range got.Triggers {
		if strings.Contains(trig, "Severity score 9/10") {
			found = true
		}
	}
	if !found {
		t.Errorf("severity trigger missing from %v", got.Triggers)
	}
}

func TestElevated(t *testing.T) {
	tests := []struct {
		tier Tier
		want bool
	}{
		{TierLow, false},
		{TierMedium, false},
		{TierHigh, true},
		{TierCritical, true},
	}
	for _, tt := range tests {
		a := RiskAssessment{Tier: tt.tier}
		if a.Elevated() != tt.want {
			t.Errorf("Elevated(%s) = %v, want %v", tt.tier, a.Elevated(), tt.want)
		}
	}
}

func TestMaxTier(t *testing.T) {
	if MaxTier(TierLow, TierHigh) != TierHigh {
		t.Error("MaxTier(low, high) should be high")
	}
	if MaxTier(TierCritical, TierMedium) != TierCritical {
		t.Error("MaxTier(critical, medium) should be critical")
	}
	if MaxTier(TierLow, TierLow) != TierLow {
		t.Error("MaxTier(low, low) should be low")
	}
}
