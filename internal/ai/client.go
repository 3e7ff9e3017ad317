// Package ai wraps the external reasoning engine (Gemini) behind a plain
// text-in / text-out call. The rest of the system treats this capability as
// opaque: one directive goes in, one decision comes out, and any failure is
// just an error to the caller.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single engine call when the caller's context has no
// deadline of its own. The engine must never be assumed synchronous-fast.
const DefaultTimeout = 30 * time.Second

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	apiKey  string
	url     string
	timeout time.Duration
	http    *http.Client
}

// NewClient builds a Gemini client. An empty API key is tolerated at
// construction (the server can boot without AI) but every Generate call will
// fail until one is configured.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = "gemini-2.5-flash" // Sensible default
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if apiKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set. Strategy generation will fail until configured.")
	}

	return &Client{
		apiKey:  apiKey,
		url:     fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", model),
		timeout: timeout,
		http:    &http.Client{},
	}
}

// Generate sends one prompt and returns the model's text answer. A single
// attempt: timeouts and transport errors surface to the caller unchanged, and
// retrying is an operator decision, not this client's.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("AI client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+"?key="+c.apiKey, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error %d: %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	// Extract candidates[0].content.parts[0].text from the Gemini response.
	candidates, ok := result["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no candidates in AI response")
	}
	candidate, ok := candidates[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed candidate in AI response")
	}
	content, ok := candidate["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed content in AI response")
	}
	parts, ok := content["parts"].([]interface{})
	if !ok || len(parts) == 0 {
		return "", fmt.Errorf("no parts in AI response")
	}
	part, ok := parts[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed part in AI response")
	}
	text, ok := part["text"].(string)
	if !ok || text == "" {
		return "", fmt.Errorf("empty text in AI response")
	}

	return text, nil
}
