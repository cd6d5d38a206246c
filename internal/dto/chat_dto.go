package dto

import "case-governance-be/pkg/risk"

type PublicChatRequest struct {
	SessionId     string `json:"session_id,omitempty"`
	Message       string `json:"message" validate:"required"`
	SeverityScore *int   `json:"severity_score,omitempty"`
}

type PublicChatResponse struct {
	SessionId         string    `json:"session_id"`
	Reply             string    `json:"reply"`
	RiskTier          risk.Tier `json:"risk_tier"`
	RecommendedAction string    `json:"recommended_action"`
	Escalated         bool      `json:"escalated"`
}
