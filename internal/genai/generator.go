// Package genai writes product descriptions with Google Gemini.
//
// GenerateDescription never fails: every problem is turned into a
// human-readable fallback text that the admin form shows as-is.
package genai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ggsale/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Fallback texts returned instead of errors
const (
	MissingAPIKeyText = "AI generation unavailable: Missing API Key."
	EmptyResponseText = "Could not generate description."
	ServiceErrorText  = "Error generating description. Please try again."
)

// MaxDescriptionLength is the length the prompt asks the model to stay under
const MaxDescriptionLength = 300

const promptTemplate = `Write a compelling, marketing-focused product description for a digital store.
Product Name: %s
Category: %s
Keywords/Features: %s

Keep it under %d characters. Make it sound professional and exciting for a gamer or tech enthusiast.
Do not use markdown formatting. Just plain text.`

// contentGenerator is the part of the genai client we call
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator produces product descriptions
type Generator struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Generator. Without an API key no client is built and every
// call returns MissingAPIKeyText.
func New(ctx context.Context, cfg config.GenAIConfig, logger *zap.Logger) (*Generator, error) {
	g := &Generator{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}

	if cfg.APIKey == "" {
		logger.Warn("No API key configured for text generation")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	g.models = client.Models
	return g, nil
}

// GenerateDescription asks the model for marketing copy about a product
func (g *Generator) GenerateDescription(ctx context.Context, productName, categoryName, keywords string) string {
	if g.models == nil {
		return MissingAPIKeyText
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(productName, categoryName, keywords)), nil)
	if err != nil {
		g.logger.Error("Description generation failed",
			zap.String("model", g.model),
			zap.String("product", productName),
			zap.Error(err),
		)
		return ServiceErrorText
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return EmptyResponseText
	}

	return text
}

// Prompt builds the instruction sent to the model
func Prompt(productName, categoryName, keywords string) string {
	return fmt.Sprintf(promptTemplate, productName, categoryName, keywords, MaxDescriptionLength)
}
