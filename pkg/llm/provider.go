// Package llm provides a unified abstraction over chat model providers.
//
// Providers register themselves in an init function; callers create them by
// name through NewChatProvider, so the serving code never imports a concrete
// provider package.
package llm

import (
	"context"
	"fmt"
	"sync"
)

// ChatProvider is a conversational model backend.
type ChatProvider interface {
	// Chat runs a multi-turn conversation and returns the assistant reply.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Generate produces text from a single prompt with an optional system prompt.
	Generate(ctx context.Context, prompt string, systemPrompt string) (string, error)

	// Name returns the provider name.
	Name() string
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatProviderFactory builds a ChatProvider from a config map.
type ChatProviderFactory func(config map[string]any) (ChatProvider, error)

var registry = &providerRegistry{
	chatProviders: make(map[string]ChatProviderFactory),
}

type providerRegistry struct {
	mu            sync.RWMutex
	chatProviders map[string]ChatProviderFactory
}

// RegisterChatProvider registers a chat provider factory under a name.
// Later registrations with the same name replace earlier ones.
func RegisterChatProvider(name string, factory ChatProviderFactory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.chatProviders[name] = factory
}

// NewChatProvider creates a chat provider instance by name.
func NewChatProvider(name string, config map[string]any) (ChatProvider, error) {
	registry.mu.RLock()
	factory, ok := registry.chatProviders[name]
	registry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown chat provider: %s", name)
	}

	return factory(config)
}

// ListChatProviders returns the names of all registered chat providers.
func ListChatProviders() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.chatProviders))
	for name := range registry.chatProviders {
		names = append(names, name)
	}
	return names
}
