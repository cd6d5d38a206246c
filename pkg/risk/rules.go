package risk

import "regexp"

// Tier is the ordinal risk classification: low < medium < high < critical.
type Tier string

const (
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

var tierRank = map[Tier]int{
	TierLow:      0,
	TierMedium:   1,
	TierHigh:     2,
	TierCritical: 3,
}

// MaxTier returns the higher of two tiers.
func MaxTier(a, b Tier) Tier {
	if tierRank[a] >= tierRank[b] {
		return a
	}
	return b
}

// rule pairs a compiled pattern with the trigger description it produces.
// Tables are ordered slices so matching order stays deterministic.
type rule struct {
	re          *regexp.Regexp
	description string
}

func mustRule(pattern, description string) rule {
	return rule{re: regexp.MustCompile(pattern), description: description}
}

// criticalRules cover immediate danger: self-harm and suicidal ideation,
// English and Chinese phrase families. Any single match forces critical.
var criticalRules = []rule{
	// Suicidal ideation - English
	mustRule(`\b(suicid|kill\s*(myself|me)|end\s*(my\s*)?life|want\s*(to)?\s*die)\b`, "Suicidal ideation detected"),
	mustRule(`\b(no\s*reason\s*to\s*live|better\s*off\s*dead|wish\s*i\s*was\s*dead)\b`, "Passive suicidal ideation"),
	mustRule(`\b(goodbye\s*(letter|note|forever)|final\s*(goodbye|message))\b`, "Potential farewell message"),
	mustRule(`\b(can'?t\s*(go\s*on|take\s*(it|this)\s*anymore|continue))\b`, "Crisis expression"),
	mustRule(`\b(ending\s*(it|everything)|give\s*up\s*on\s*life)\b`, "End-of-life intent"),

	// Self-harm - English
	mustRule(`\b(self[- ]?harm|cut(ting)?\s*(myself|my\s*(wrist|arm|leg)))\b`, "Self-harm behavior"),
	mustRule(`\b(hurt(ing)?\s*(myself|my\s*body))\b`, "Self-injury indication"),
	mustRule(`\b(overdose|od|too\s*many\s*pills)\b`, "Overdose concern"),
	mustRule(`\b(burn(ing)?\s*(myself|my\s*skin))\b`, "Self-burning concern"),
	mustRule(`\b(slit(ting)?\s*(my\s*)?(wrist|throat))\b`, "Self-injury method"),

	// Suicidal ideation - Chinese
	mustRule(`(想死|死了算了|不想活|结束生命|自杀|自绝)`, "检测到自杀想法"),
	mustRule(`(活着没意思|活不下去|不想活了|我想走了)`, "检测到危机表达"),
	mustRule(`(跳楼|跳桥|上吊|割脉)`, "检测到自伤方法"),

	// Self-harm - Chinese
	mustRule(`(自残|自伤|割伤|割手|割脉|吃药)`, "检测到自伤行为"),
	mustRule(`(伤害自己|惩罚自己|折磨自己)`, "检测到自我伤害"),
}

// highRules cover urgent concern: extreme distress, violence and abuse.
// Any single match forces high unless critical already fired.
var highRules = []rule{
	// Extreme emotional distress - English
	mustRule(`\b(unbearable|excruciating)\s*(pain|suffering)\b`, "Extreme suffering"),
	mustRule(`\b(can'?t\s*(bear|stand|handle)\s*(it|this|the\s*pain))\b`, "Unbearable distress"),
	mustRule(`\b(no\s*(hope|point|way\s*out)|feel(ing)?\s*trapped)\b`, "Hopelessness/trapped"),
	mustRule(`\b(everyone\s*(would\s*be)?\s*better\s*without\s*me)\b`, "Burden perception"),
	mustRule(`\b(completely\s*(hopeless|worthless|alone))\b`, "Severe negative cognition"),

	// Violence/Abuse indicators - English
	mustRule(`\b(beat(en|ing)?\s*(me|up)|hit(s|ting)?\s*me)\b`, "Physical abuse indicator"),
	mustRule(`\b(abuse|abusing|abused)\b`, "Abuse mentioned"),
	mustRule(`\b(violent|violence|assault)\b`, "Violence mentioned"),
	mustRule(`\b(rape[d]?|sexual\s*(abuse|assault))\b`, "Sexual violence"),
	mustRule(`\b(dangerous\s*(situation|person))\b`, "Danger indicator"),

	// Extreme distress - Chinese
	mustRule(`(崩溃|绝望|无法承受|活不下去)`, "检测到极端痛苦"),
	mustRule(`(家暴|殴打|虐待|强奸)`, "检测到暴力/虐待"),
	mustRule(`(太痛苦了|活着没意义|没有希望)`, "检测到绝望表达"),
}

// mediumRules cover elevated concern: depression, anxiety, functional
// impairment. Two or more distinct matches elevate to medium; a single
// match is recorded but does not change the tier.
var mediumRules = []rule{
	// Depression indicators - English
	mustRule(`\b(depress(ed|ion|ing))\b`, "Depression mentioned"),
	mustRule(`\b(hopeless|worthless|helpless|empty|numb)\b`, "Negative cognition"),
	mustRule(`\b(no\s*(motivation|energy|interest))\b`, "Anhedonia indicator"),
	mustRule(`\b(cry(ing)?\s*(all\s*the\s*time|constantly|everyday))\b`, "Persistent crying"),
	mustRule(`\b(hate\s*(myself|my\s*(life|body)))\b`, "Self-hatred"),

	// Anxiety indicators - English
	mustRule(`\b(anxious|anxiety|panic)\b`, "Anxiety mentioned"),
	mustRule(`\b(cannot\s*(cope|function|breathe))\b`, "Functioning impairment"),
	mustRule(`\b(overwhelming|overwhelmed)\b`, "Overwhelming feeling"),
	mustRule(`\b(terrified|scared\s*(all\s*the\s*time))\b`, "Severe fear"),

	// Sleep/Functioning - English
	mustRule(`\b(insomnia|cannot\s*sleep|not\s*sleeping)\b`, "Sleep disturbance"),
	mustRule(`\b(not\s*(eating|showering|getting\s*out\s*of\s*bed))\b`, "Self-care neglect"),
	mustRule(`\b(stopped\s*(taking\s*)?medication)\b`, "Medication non-adherence"),

	// Medium risk - Chinese
	mustRule(`(抵触|焦虑|恐慌|担心)`, "检测到焦虑"),
	mustRule(`(失眠|睡不着|吃不下)`, "检测到睡眠/食欲问题"),
	mustRule(`(没有动力|什么都不想做|讨厌自己)`, "检测到抑郁症状"),
}
