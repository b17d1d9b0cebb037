// Package textgen wraps single request/response round trips to the
// generative-text model. Each call is attempted exactly once: the pipeline's
// fault tolerance lives in the callers, not here.
package textgen

import (
	"context"
	"fmt"

	"coolfinds/internal/config"

	"google.golang.org/genai"
)

// DefaultModel is the text model used when the configuration names none.
const DefaultModel = "gemini-flash-lite-latest"

// systemInstruction keeps conversational filler out of the model's answers.
// The downstream cleaning filter catches what still slips through.
const systemInstruction = `You are a robotic content generator. You never use conversational filler like "Sure," "Here is," or "Okay." You provide only the requested text content.`

// Client issues prompts to the generative-text model.
type Client struct {
	modelName string
	maxTokens int32
	gClient   *genai.Client
}

// NewClient creates a text-generation client from the typed model
// configuration. The API key is required.
func NewClient(ctx context.Context, cfg config.TextModel) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("text model API key is required. Set GEMINI_API_KEY or ai.text.api_key in the config file")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1500
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text model client: %w", err)
	}

	return &Client{
		modelName: modelName,
		maxTokens: maxTokens,
		gClient:   gClient,
	}, nil
}

// Generate sends one prompt with the caller-supplied sampling temperature and
// returns the model's raw free-text answer. The answer may embed JSON inside
// conversational wrapper text; callers are responsible for extraction.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxTokens,
		Temperature:     genai.Ptr(temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// ModelName returns the model name used by this client.
func (c *Client) ModelName() string {
	return c.modelName
}
