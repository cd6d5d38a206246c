package constant

// Audit tracks.
const (
	TrackGovernance = "governance"
	TrackPublic     = "public"
	TrackClinician  = "clinician"
)

// Policy names recorded in audit payloads.
const (
	PolicyMandatoryCitations = "mandatory_citations"
	PolicySafetyEscalation   = "safety_escalation"
	PolicyTransferGate       = "transfer_gate"
	PolicyWorkflowState      = "workflow_state"
)

// Snippet length for evidence references. Position-based truncation, not
// semantic summarization; changing it breaks downstream consumers.
const SnippetMaxChars = 200
