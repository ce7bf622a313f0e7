package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Request describes one structured generator call. Every sub-step of the
// workflow goes through this shape: instruction text, a response schema
// the model must satisfy, and an optional inline binary attachment (used
// by the extraction call only).
type Request struct {
	System     string
	Prompt     string
	Schema     *genai.Schema
	Attachment *Attachment
	Tier       ModelTier
}

// Attachment is inline binary input forwarded with a request.
type Attachment struct {
	Data     []byte
	MimeType string
}

// Generator is the abstraction over the generative backend. The workflow
// treats it as an opaque function from a request to structured JSON.
type Generator interface {
	GenerateJSON(ctx context.Context, req Request) ([]byte, error)
}

// GeminiClient implements Generator on the Gemini API.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a Gemini-backed generator.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{client: client, config: config}, nil
}

// GenerateJSON runs one structured call and returns the raw JSON bytes of
// the reply. The response MIME type and schema are enforced on the request
// side; callers still validate the shape before unmarshalling.
func (c *GeminiClient) GenerateJSON(ctx context.Context, req Request) ([]byte, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, &APICallError{Message: fmt.Sprintf("no model configured for tier %s", req.Tier)}
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Attachment != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Attachment.Data, req.Attachment.MimeType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName, contents, cfg)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content", Cause: err}
	}

	text := resp.Text()
	if text == "" {
		return nil, &APICallError{Message: "empty response from model"}
	}

	return []byte(CleanJSONBlock(text)), nil
}
