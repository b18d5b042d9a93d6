// Package modelsvc talks to an OpenAI-compatible model service (LM Studio
// in the default setup) for image tagging, query tagging, and text
// embedding.
package modelsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/internal/apperr"
	"github.com/arvane/photodex/utils/tags"
)

// Client is the production Capability implementation. Chat completions go
// through a plain HTTP client because the service may answer with message
// content that is either a string or a list of text parts; embeddings go
// through go-openai, whose response shape is fixed.
type Client struct {
	http        *http.Client
	embeddings  *openai.Client
	baseURL     string
	imageModel  string
	textModel   string
	embedModel  string
	temperature float32
}

// NewClient creates a model-service client from configuration.
func NewClient(cfg *config.Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.ModelAPIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.ModelBaseURL, "/")

	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 32,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		embeddings:  openai.NewClientWithConfig(clientCfg),
		baseURL:     strings.TrimRight(cfg.ModelBaseURL, "/"),
		imageModel:  cfg.ImageModel,
		textModel:   cfg.TextModel,
		embedModel:  cfg.EmbeddingModel,
		temperature: cfg.ModelTemperature,
	}
}

// TagImage implements Capability.
func (c *Client) TagImage(ctx context.Context, base64Image, mimeType string) ([]string, error) {
	imageURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64Image)

	messages := []chatMessage{
		{
			Role: "system",
			Content: []contentPart{
				{Type: "text", Text: imageTaggingPrompt},
			},
		},
		{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: "Analyze this image and return the tags."},
				{Type: "image_url", ImageURL: &imagePayload{URL: imageURL}},
			},
		},
	}

	text, err := c.chatCompletion(ctx, c.imageModel, messages)
	if err != nil {
		return nil, apperr.Service("model service failed to tag image", err)
	}
	return tags.Parse(text), nil
}

// TagsFromQuery implements Capability.
func (c *Client) TagsFromQuery(ctx context.Context, query string) ([]string, error) {
	messages := []chatMessage{
		{
			Role: "system",
			Content: []contentPart{
				{Type: "text", Text: searchTaggingPrompt},
			},
		},
		{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: query},
			},
		},
	}

	text, err := c.chatCompletion(ctx, c.textModel, messages)
	if err != nil {
		return nil, apperr.Service("model service failed to process search query", err)
	}
	return tags.Parse(text), nil
}

// EmbedTexts implements Capability.
func (c *Client) EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error) {
	resp, err := c.embeddings.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: inputs,
		Model: openai.EmbeddingModel(c.embedModel),
	})
	if err != nil {
		return nil, apperr.Service("embedding request failed", err)
	}

	if len(resp.Data) != len(inputs) {
		return nil, apperr.Service(
			fmt.Sprintf("embedding count mismatch: %d inputs, %d vectors", len(inputs), len(resp.Data)), nil)
	}

	vectors := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, apperr.Service(
				fmt.Sprintf("embedding response index %d out of range", item.Index), nil)
		}
		vectors[item.Index] = item.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, apperr.Service(
				fmt.Sprintf("embedding response missing vector for input %d", i), nil)
		}
	}
	return vectors, nil
}

// chatCompletion posts to /chat/completions and returns the first choice's
// trimmed text content.
func (c *Client) chatCompletion(ctx context.Context, model string, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to contact model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("model service response was not valid JSON: %w", err)
	}

	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("model service response contained no choices")
	}

	text := strings.TrimSpace(payload.Choices[0].Message.Content.Text())
	if text == "" {
		return "", fmt.Errorf("model service response did not include textual content")
	}
	return text, nil
}
