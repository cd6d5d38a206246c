package constant

// DraftGenerationPrompt instructs the generation backend to ground every
// claim in retrieved evidence. The citation gate still verifies the output;
// the prompt is guidance, not enforcement.
const DraftGenerationPrompt = `You are drafting a clinical case document for a licensed clinician to review.

STRICT RULES:
1. Base every clinical claim on the evidence excerpts below.
2. Cite the supporting document inline using the exact marker format [DOC:<doc_id>] after each claim.
3. Do not diagnose. Summarize observations and cite guidance.
4. If the evidence does not cover a topic, say so instead of inventing content.

EVIDENCE EXCERPTS:
%s

CASE NOTES:
%s

Write the draft now. Remember: every claim needs a [DOC:<doc_id>] citation.`
