package embedding

import "context"

// Dimension is fixed by the embedding models in use (Gemini
// text-embedding-004 and nomic-embed-text both emit 768 dims) and by the
// vector(768) column on the documents table.
const Dimension = 768

// Provider generates a normalized embedding vector for text. Implementations
// must be deterministic for identical input so lazy index backfill and
// caching stay stable, and must honor context cancellation.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
