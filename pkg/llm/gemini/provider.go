// Package gemini implements the Google Gemini chat provider.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kart-io/haven/pkg/llm"
)

const ProviderName = "gemini"

func init() {
	llm.RegisterChatProvider(ProviderName, NewProvider)
}

// Config holds Gemini provider settings.
type Config struct {
	// BaseURL is the API base address.
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// APIKey is the Google AI API key.
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// ChatModel is the model used for conversations.
	ChatModel string `json:"chat_model" mapstructure:"chat_model"`

	// Timeout bounds a single API call.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on transport or 5xx failures.
	MaxRetries int `json:"max_retries" mapstructure:"max_retries"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		ChatModel:  "gemini-1.5-flash",
		Timeout:    120 * time.Second,
		MaxRetries: 3,
	}
}

// Provider is the Gemini implementation of llm.ChatProvider.
type Provider struct {
	config     *Config
	httpClient *http.Client
}

// NewProvider creates a Gemini provider from a config map.
func NewProvider(configMap map[string]any) (llm.ChatProvider, error) {
	cfg := DefaultConfig()

	if v, ok := configMap["base_url"].(string); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := configMap["api_key"].(string); ok && v != "" {
		cfg.APIKey = v
	}
	if v, ok := configMap["chat_model"].(string); ok && v != "" {
		cfg.ChatModel = v
	}
	if v, ok := configMap["timeout"].(time.Duration); ok && v > 0 {
		cfg.Timeout = v
	}
	if v, ok := configMap["max_retries"].(int); ok && v >= 0 {
		cfg.MaxRetries = v
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api_key is required")
	}

	return NewProviderWithConfig(cfg), nil
}

// NewProviderWithConfig creates a Gemini provider from structured config.
func NewProviderWithConfig(cfg *Config) *Provider {
	return &Provider{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return ProviderName
}

type chatRequest struct {
	Contents          []chatContent     `json:"contents"`
	SystemInstruction *chatContent      `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type chatContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []chatPart `json:"parts"`
}

type chatPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type chatResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
			Role string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Chat runs a multi-turn conversation through the generateContent API.
// Gemini takes the system prompt out of band, so system messages become the
// systemInstruction field and assistant turns map to the "model" role.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	var contents []chatContent
	var systemInstruction *chatContent

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			systemInstruction = &chatContent{
				Parts: []chatPart{{Text: msg.Content}},
			}
		case llm.RoleUser:
			contents = append(contents, chatContent{
				Role:  "user",
				Parts: []chatPart{{Text: msg.Content}},
			})
		case llm.RoleAssistant:
			contents = append(contents, chatContent{
				Role:  "model",
				Parts: []chatPart{{Text: msg.Content}},
			})
		}
	}

	reqBody := chatRequest{
		Contents:          contents,
		SystemInstruction: systemInstruction,
		GenerationConfig: &generationConfig{
			Temperature:     0.7,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		p.config.BaseURL, p.config.ChatModel, p.config.APIKey)

	resp, err := p.doRequestWithRetry(ctx, url, body)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini: status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	if len(chatResp.Candidates) == 0 || len(chatResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	return chatResp.Candidates[0].Content.Parts[0].Text, nil
}

// Generate produces text for a single prompt.
func (p *Provider) Generate(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	messages := []llm.Message{}
	if systemPrompt != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: prompt,
	})

	return p.Chat(ctx, messages)
}

// doRequestWithRetry retries transport errors and 5xx responses with a short
// linear backoff. The request is rebuilt each attempt since the body reader
// is consumed on send.
func (p *Provider) doRequestWithRetry(ctx context.Context, url string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 0; i <= p.config.MaxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.httpClient.Do(req)
		if err == nil {
			if resp.StatusCode < 500 {
				return resp, nil
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("server error, status code %d", resp.StatusCode)
		} else {
			lastErr = err
		}

		if i < p.config.MaxRetries {
			select {
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
