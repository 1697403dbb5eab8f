// Package content asks a text-generation API for card concepts.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"cardforge/internal/card"
	"cardforge/internal/config"
)

// Source produces a card concept for a theme and archetype. A non-nil
// error means "no card produced" and the caller is expected to fall back;
// it is never fatal.
type Source interface {
	Generate(ctx context.Context, theme, archetype string) (*card.Card, error)
}

// cardSchema is embedded in the prompt so the model returns exactly the
// five fields the Card model carries.
const cardSchema = `{"name": "string", "description": "string", "image_prompt": "string", "stats": {"stat_name": "integer"}, "card_type": "string"}`

// Client generates card concepts through an OpenAI-style chat endpoint.
type Client struct {
	apiURL  string
	model   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a content client from configuration.
func NewClient(cfg config.ContentSettings) *Client {
	return &Client{
		apiURL:  cfg.APIURL,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate requests one card concept. Any network failure, non-2xx status,
// malformed body, or missing field comes back as an error for the pipeline
// to branch on.
func (c *Client) Generate(ctx context.Context, theme, archetype string) (*card.Card, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"You are a creative assistant for a trading card game designer. "+
			"Your task is to generate a unique card concept based on the theme: '%s' "+
			"and card type: '%s'. For the card, you must provide a name, "+
			"a short description (max 100 characters), an image prompt for AI image generation, "+
			"and relevant stats. The stats should be balanced for a trading card game. "+
			"Also include the card_type. IMPORTANT: Your entire response MUST be a single, "+
			"valid JSON object. Do not include any text, explanation, or markdown formatting "+
			"before or after the JSON object. The JSON schema for the card object must be "+
			"as follows: %s.",
		theme, archetype, cardSchema,
	)

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("text generation request: HTTP %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("response contains no choices")
	}

	return parseCardDocument(chat.Choices[0].Message.Content)
}

// parseCardDocument maps the model's JSON reply onto a Card, requiring all
// five fields to be present.
func parseCardDocument(content string) (*card.Card, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("decode card document: %w", err)
	}

	for _, key := range []string{"name", "description", "image_prompt", "stats", "card_type"} {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("card document missing field %q", key)
		}
	}

	c, err := card.Parse([]byte(content))
	if err != nil {
		return nil, err
	}
	if c.Name == "" {
		return nil, fmt.Errorf("card document has empty name")
	}
	return c, nil
}

var _ Source = (*Client)(nil)
