// Package llm provides the single chokepoint for every generative-model
// call in the system (C2): a throttled, retrying Gateway wrapping a
// pluggable Model capability, grounded on pkg/sync.Limiter for the
// semaphore and the original_source gemini_semaphore.py throttle-and-retry
// contract.
package llm

import "context"

// Model is the minimal generative capability the gateway dispatches
// through. Implementations may be backed by a synchronous SDK call (the
// common case, e.g. openai-go/v3) or by anything already asynchronous;
// the gateway treats both uniformly since Go has no sync/async split at
// the call-site the way the Python original does.
type Model interface {
	// Generate sends prompt to the underlying model and returns its text
	// completion.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a plain function to a Model.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

func (f ModelFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
