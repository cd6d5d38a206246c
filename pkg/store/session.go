package store

import "time"

// Session is a public-tier chat session held in memory. It carries the
// per-session risk history so repeated elevated messages are visible to the
// escalation policy without a database round trip.
type Session struct {
	ID           string
	CaseId       string
	Messages     []SessionMessage
	HighestTier  string
	CreatedAt    time.Time
	LastActiveAt time.Time
}

type SessionMessage struct {
	Role     string // "user" or "assistant"
	Content  string
	RiskTier string
	SentAt   time.Time
}
