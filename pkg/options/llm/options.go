// Package llm provides chat model provider configuration options.
package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/haven/pkg/options"
)

var _ options.IOptions = (*ProviderOptions)(nil)

// ProviderOptions defines the chat provider configuration.
type ProviderOptions struct {
	// Provider is the provider name (gemini, ollama).
	Provider string `json:"provider" mapstructure:"provider"`

	// BaseURL is the API base address.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// APIKey is the provider API key. Falls back to the LLM_API_KEY
	// environment variable when unset.
	APIKey string `json:"-" mapstructure:"api-key"`

	// Model is the chat model name.
	Model string `json:"model" mapstructure:"model"`

	// Timeout bounds a single completion call.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of transport-level retries per call.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`
}

// NewProviderOptions creates default chat provider options.
func NewProviderOptions() *ProviderOptions {
	return &ProviderOptions{
		Provider:   "gemini",
		Model:      "gemini-1.5-flash",
		Timeout:    120 * time.Second,
		MaxRetries: 3,
	}
}

// ToConfigMap converts the options to a config map for provider factories.
func (o *ProviderOptions) ToConfigMap() map[string]any {
	return map[string]any{
		"base_url":    o.BaseURL,
		"api_key":     o.APIKey,
		"chat_model":  o.Model,
		"timeout":     o.Timeout,
		"max_retries": o.MaxRetries,
	}
}

// AddFlags adds flags for chat provider options to the specified FlagSet.
func (o *ProviderOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Provider, options.Join(prefixes...)+"llm.provider", o.Provider, "Chat provider (gemini, ollama).")
	fs.StringVar(&o.BaseURL, options.Join(prefixes...)+"llm.base-url", o.BaseURL, "Chat provider API base URL.")
	fs.StringVar(&o.APIKey, options.Join(prefixes...)+"llm.api-key", o.APIKey, "Chat provider API key (prefer LLM_API_KEY env var).")
	fs.StringVar(&o.Model, options.Join(prefixes...)+"llm.model", o.Model, "Chat model name.")
	fs.DurationVar(&o.Timeout, options.Join(prefixes...)+"llm.timeout", o.Timeout, "Chat completion timeout.")
	fs.IntVar(&o.MaxRetries, options.Join(prefixes...)+"llm.max-retries", o.MaxRetries, "Transport-level retries per call.")
}

// Validate validates the chat provider options.
//
// A missing API key is not a validation error: the advisor degrades to a
// canned reply when no provider credential is configured.
func (o *ProviderOptions) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Provider == "" {
		errs = append(errs, fmt.Errorf("llm.provider is required"))
	}
	if o.Model == "" {
		errs = append(errs, fmt.Errorf("llm.model is required"))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("llm.timeout must be positive"))
	}
	return errs
}

// Complete completes the chat provider options with defaults.
func (o *ProviderOptions) Complete() error {
	if o.APIKey == "" {
		o.APIKey = os.Getenv("LLM_API_KEY")
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	return nil
}

// HasCredential reports whether the provider can be called at all. Ollama
// runs locally and needs no key.
func (o *ProviderOptions) HasCredential() bool {
	return o.Provider == "ollama" || o.APIKey != ""
}
