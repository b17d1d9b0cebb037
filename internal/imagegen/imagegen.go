// Package imagegen wraps one request/response round trip to the
// generative-image model, decoding its base64 answer into raw PNG bytes.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"coolfinds/internal/config"
)

// DefaultModel is the low-latency image model used when the configuration
// names none.
const DefaultModel = "@cf/black-forest-labs/flux-1-schnell"

// Client handles image model API interactions.
type Client struct {
	accountID  string
	apiToken   string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an image-generation client from the typed model
// configuration.
func NewClient(cfg config.ImageModel) (*Client, error) {
	if cfg.AccountID == "" || cfg.APIToken == "" {
		return nil, fmt.Errorf("image model account ID and API token are required. Set CF_ACCOUNT_ID and CF_API_TOKEN")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.cloudflare.com/client/v4"
	}

	return &Client{
		accountID:  cfg.AccountID,
		apiToken:   cfg.APIToken,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// generateRequest is the image model's request payload.
type generateRequest struct {
	Prompt   string `json:"prompt"`
	NumSteps int    `json:"num_steps"`
}

// generateResponse is the image model's response envelope.
type generateResponse struct {
	Result struct {
		Image string `json:"image"` // Base64-encoded PNG, absent on failure
	} `json:"result"`
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Generate requests one image for the prompt at the given step count and
// returns the decoded PNG bytes. A response without image data is an error;
// callers decide whether that aborts anything.
func (c *Client) Generate(ctx context.Context, prompt string, steps int) ([]byte, error) {
	reqBody, err := json.Marshal(generateRequest{Prompt: prompt, NumSteps: steps})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, c.accountID, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image model API error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if genResp.Result.Image == "" {
		if len(genResp.Errors) > 0 {
			return nil, fmt.Errorf("image model returned no image: %s", genResp.Errors[0].Message)
		}
		return nil, fmt.Errorf("image model response missing image data")
	}

	imageData, err := base64.StdEncoding.DecodeString(genResp.Result.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}

	return imageData, nil
}
