// Package gemini talks to the Gemini generateContent API for question,
// analysis and notes generation. Every public call degrades to a fixed
// fallback payload on failure; callers never see an error from this
// boundary.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second, // generation can be slow
		},
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	}
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generateText sends one prompt and returns the raw text of the first
// candidate. jsonOutput asks the model for an application/json response.
func (c *Client) generateText(ctx context.Context, prompt string, jsonOutput bool) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if jsonOutput {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response generateContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}
