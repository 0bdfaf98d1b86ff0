package portraitgen

import (
	"context"
	"log/slog"
	"time"
)

// Client performs single generation calls and never fails: every error is logged
// and reported as "no image".
type Client struct {
	generator ImageGenerator
	model     Model
	logger    *slog.Logger
}

// NewClient creates a Client for the given generator and model.
// An empty model lets the generator pick its default.
func NewClient(generator ImageGenerator, model Model, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

// GenerateOne sends the image and prompt as one request and returns the first
// produced image as a data URI. ok is false when the service produced no image
// or the call failed.
func (c *Client) GenerateOne(ctx context.Context, img EncodedImage, prompt string) (uri string, ok bool) {
	uri, outcome := c.generate(ctx, img, prompt)
	return uri, outcome == OutcomeImage
}

func (c *Client) generate(ctx context.Context, img EncodedImage, prompt string) (string, Outcome) {
	input, err := img.InputImage()
	if err != nil {
		c.logger.Error("failed to decode source image", "error", err.Error())
		return "", OutcomeFailed
	}
	return c.generateInput(ctx, input, prompt, nil)
}

// generateInput is the per-call body shared with the batch fan-out, which decodes once.
// metadata is passed through to the generator for tracking.
func (c *Client) generateInput(ctx context.Context, input InputImage, prompt string, metadata map[string]string) (uri string, outcome Outcome) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("generator panicked", "model", string(c.model), "panic", r)
			uri, outcome = "", OutcomeFailed
		}
	}()

	result, err := c.generator.Edit(ctx, input, prompt, &GenerateConfig{Model: c.model, Metadata: metadata})
	duration := time.Since(start)

	if err != nil {
		kind := classifyError(err)
		c.logger.Error("error generating image",
			"model", string(c.model),
			"outcome", string(kind),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return "", kind
	}

	image, found := result.FirstImage()
	if !found {
		c.logger.Warn("model returned no image",
			"model", string(c.model),
			"outcome", string(OutcomeNoImage),
			"duration_ms", duration.Milliseconds(),
			"has_text", result != nil && result.Text != "",
		)
		return "", OutcomeNoImage
	}

	c.logger.Debug("image generated",
		"model", string(c.model),
		"duration_ms", duration.Milliseconds(),
		"mime_type", image.MIMEType,
		"size", len(image.Data),
	)

	return image.DataURI(), OutcomeImage
}
