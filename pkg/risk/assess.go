package risk

import (
	"fmt"
	"strings"
)

// RiskAssessment is the immutable result of one classification call.
type RiskAssessment struct {
	Tier              Tier     `json:"tier"`
	Triggers          []string `json:"triggers"`
	Explanation       string   `json:"explanation"`
	RecommendedAction string   `json:"recommended_action"`
}

// Standardized help-seeking paths per tier. The screening output is
// presented as-is, never interpreted as a diagnosis.
const (
	actionCritical = "IMMEDIATE SAFETY CONCERN: Please reach out to crisis support now. " +
		"• National Crisis Line: 988 (US) | • Crisis Text: Text HOME to 741741 | " +
		"• Emergency: 911 | • 中国24小时心理援助热线: 010-82951332"
	actionHigh = "URGENT SUPPORT RECOMMENDED: Please consider speaking with a professional soon. " +
		"• National Helpline: 988 | • SAMHSA: 1-800-662-4357 | " +
		"Clinician review recommended within 24 hours."
	actionMedium = "SUPPORT AVAILABLE: Consider connecting with a mental health professional. " +
		"Routine follow-up recommended within 1 week. You are not alone."
	actionLow = "CONTINUE SUPPORT: No immediate safety concerns detected. " +
		"Resources are always available if needed."
)

// Assess runs the rule-based safety screening over text with conservative,
// cascading thresholds:
//
//	critical: any single critical pattern match
//	high:     any single high pattern match, or severity >= 7
//	medium:   2+ distinct medium pattern matches, or severity >= 5
//	low:      no significant triggers
//
// A severity score can only raise the tier, never lower it. A score outside
// 1..10 is treated as absent. The full rule set of the winning tier is always
// scanned so every matched trigger is recorded.
func Assess(text string, severityScore *int) RiskAssessment {
	triggers := make([]string, 0)
	tier := TierLow
	input := strings.ToLower(text)

	for _, r := range criticalRules {
		if r.re.MatchString(input) {
			triggers = append(triggers, "CRITICAL: "+r.description)
			tier = TierCritical
		}
	}

	if tier != TierCritical {
		for _, r := range highRules {
			if r.re.MatchString(input) {
				triggers = append(triggers, "HIGH: "+r.description)
				tier = TierHigh
			}
		}
	}

	if tier != TierCritical && tier != TierHigh {
		mediumMatches := make([]string, 0)
		for _, r := range mediumRules {
			if r.re.MatchString(input) {
				mediumMatches = append(mediumMatches, "MEDIUM: "+r.description)
			}
		}
		triggers = append(triggers, mediumMatches...)
		// A single medium match is recorded but stays at low.
		if len(mediumMatches) >= 2 {
			tier = TierMedium
		}
	}

	if severityScore != nil {
		score := *severityScore
		if score >= 1 && score <= 10 {
			switch {
			case score >= 8:
				triggers = append(triggers, fmt.Sprintf("CRITICAL: Severity score %d/10 (threshold: 8+)", score))
				tier = TierCritical
			case score >= 7 && tier != TierCritical:
				triggers = append(triggers, fmt.Sprintf("HIGH: Severity score %d/10 (threshold: 7+)", score))
				tier = TierHigh
			case score >= 5 && tier != TierCritical && tier != TierHigh:
				triggers = append(triggers, fmt.Sprintf("MEDIUM: Severity score %d/10 (threshold: 5+)", score))
				tier = TierMedium
			}
		}
	}

	return RiskAssessment{
		Tier:              tier,
		Triggers:          triggers,
		Explanation:       buildExplanation(triggers),
		RecommendedAction: recommendedAction(tier),
	}
}

// Elevated reports whether the tier warrants automatic escalation.
func (a RiskAssessment) Elevated() bool {
	return tierRank[a.Tier] >= tierRank[TierHigh]
}

func recommendedAction(tier Tier) string {
	switch tier {
	case TierCritical:
		return actionCritical
	case TierHigh:
		return actionHigh
	case TierMedium:
		return actionMedium
	default:
		return actionLow
	}
}

func buildExplanation(triggers []string) string {
	if len(triggers) == 0 {
		return "No significant risk indicators detected. " +
			"Continuing supportive dialogue. Resources available anytime."
	}

	summary := strings.Join(triggers[:min(3, len(triggers))], "; ")
	if len(triggers) > 3 {
		summary += fmt.Sprintf(" (+%d more)", len(triggers)-3)
	}
	return fmt.Sprintf(
		"Automated safety screening detected %d trigger(s): %s. "+
			"This is NOT a diagnosis. Rule-based screening for safety support only.",
		len(triggers), summary,
	)
}
