package llm

import "context"

// Message is a chat turn in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

type Option func(*Options)

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Provider is the narrow contract to the generation backend. The core never
// trusts its output: drafts it produces still pass the citation gate.
type Provider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
