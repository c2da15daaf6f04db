package resilience

import (
	"context"

	"github.com/kart-io/haven/pkg/llm"
)

// GuardedChatProvider wraps a ChatProvider with a circuit breaker.
type GuardedChatProvider struct {
	provider llm.ChatProvider
	cb       *CircuitBreaker
}

// NewGuardedChatProvider wraps provider with a breaker built from config.
func NewGuardedChatProvider(provider llm.ChatProvider, config *Config) *GuardedChatProvider {
	return &GuardedChatProvider{
		provider: provider,
		cb:       NewCircuitBreaker(config),
	}
}

// Chat runs a conversation through the breaker.
func (g *GuardedChatProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	var result string
	err := g.cb.Execute(func() error {
		var callErr error
		result, callErr = g.provider.Chat(ctx, messages)
		return callErr
	})
	return result, err
}

// Generate produces text through the breaker.
func (g *GuardedChatProvider) Generate(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	var result string
	err := g.cb.Execute(func() error {
		var callErr error
		result, callErr = g.provider.Generate(ctx, prompt, systemPrompt)
		return callErr
	})
	return result, err
}

// Name returns the wrapped provider name.
func (g *GuardedChatProvider) Name() string {
	return g.provider.Name()
}

// CircuitBreaker exposes the breaker for monitoring.
func (g *GuardedChatProvider) CircuitBreaker() *CircuitBreaker {
	return g.cb
}
