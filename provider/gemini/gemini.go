// Package gemini provides an ImageGenerator implementation using Google's Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mhpenta/portraitgen"
	"google.golang.org/genai"
)

// Model name constants - the actual API model names.
const (
	// APIModelFlashImagePreview is the preview release of Gemini 2.5 Flash Image
	APIModelFlashImagePreview = "gemini-2.5-flash-image-preview"

	// APIModelFlashImage is the stable release of Gemini 2.5 Flash Image
	APIModelFlashImage = "gemini-2.5-flash-image"
)

// responseModalities requests images, with text allowed alongside.
var responseModalities = []string{string(genai.ModalityImage), string(genai.ModalityText)}

// contentGenerator is the slice of the genai Models service used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements ImageGenerator using Google's Gemini API.
type GeminiGenerator struct {
	models contentGenerator
}

// Ensure GeminiGenerator implements the interface.
var _ portraitgen.ImageGenerator = (*GeminiGenerator)(nil)

// Config configures the Gemini provider.
type Config struct {
	// APIKey for authentication. If empty, the SDK falls back to
	// GOOGLE_API_KEY or GEMINI_API_KEY.
	APIKey string

	// BaseURL for custom endpoints (optional)
	BaseURL string
}

// New creates a new GeminiGenerator.
func New(ctx context.Context, config *Config) (*GeminiGenerator, error) {
	if config == nil {
		config = &Config{}
	}

	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  config.APIKey,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		models: client.Models,
	}, nil
}

// NewWithAPIKey creates a generator with an API key for Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	return New(ctx, &Config{APIKey: apiKey})
}

// Edit sends the image followed by the instruction as a single multi-part request.
func (g *GeminiGenerator) Edit(ctx context.Context, image portraitgen.InputImage, instruction string, config *portraitgen.GenerateConfig) (*portraitgen.GenerateResult, error) {
	if err := portraitgen.ValidatePrompt(instruction); err != nil {
		return nil, err
	}
	if err := portraitgen.ValidateInputImage(image); err != nil {
		return nil, err
	}

	modelName := g.resolveModel(config)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image.Data, image.MIMEType),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	}

	result, err := g.models.GenerateContent(ctx, modelName, contents, genConfig)
	if err != nil {
		if rlErr := checkRateLimitError(err, modelName); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("edit failed: %w", err)
	}

	return parseResult(result)
}

// Models returns the model definitions supported by this provider.
// The first model (flash image preview) is the default.
func (g *GeminiGenerator) Models() []portraitgen.ModelInfo {
	return []portraitgen.ModelInfo{
		FlashImagePreviewInfo,
		FlashImageInfo,
	}
}

// Close releases any resources held by the generator.
func (g *GeminiGenerator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// resolveModel determines which API model name to use.
func (g *GeminiGenerator) resolveModel(config *portraitgen.GenerateConfig) string {
	if config != nil && config.Model != "" {
		return string(config.Model)
	}
	return g.Models()[0].APIModelName
}

// parseResult converts the first candidate of a Gemini response to our result type.
// Image parts are kept in response order; a response without images is not an error.
func parseResult(result *genai.GenerateContentResponse) (*portraitgen.GenerateResult, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, errors.New("empty response from model")
	}

	genResult := &portraitgen.GenerateResult{
		Images: make([]portraitgen.GeneratedImage, 0),
	}

	candidate := result.Candidates[0]
	if candidate.Content != nil {
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			if part.Text != "" {
				text.WriteString(part.Text)
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				genResult.Images = append(genResult.Images, portraitgen.GeneratedImage{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
					Index:    len(genResult.Images),
				})
			}
		}
		genResult.Text = text.String()
	}

	if result.UsageMetadata != nil {
		genResult.UsageMetadata = &portraitgen.UsageMetadata{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CandidatesTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
			ImageCount:       len(genResult.Images),
		}
	}

	return genResult, nil
}

// checkRateLimitError wraps quota rejections in a RateLimitError.
// Other errors yield nil.
func checkRateLimitError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	if apiErr.Code != http.StatusTooManyRequests && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return nil
	}

	return &portraitgen.RateLimitError{
		RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
		LimitType:  "requests",
		Model:      model,
		Err:        err,
	}
}
