package portraitgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// ModelDefault is the model used when none is configured.
	ModelDefault Model = "gemini-2.5-flash-image-preview"
)

// Metadata keys set on every call of a batch.
const (
	MetadataBatchID = "batch_id"
	MetadataCall    = "call"
)

// ErrGeneratorNotConfigured is returned when a Manager has no generator.
var ErrGeneratorNotConfigured = errors.New("generator not configured")

// BatchRequest holds the user's selections for one batch of variations.
type BatchRequest struct {
	// Image is the source image content. It is read once, fully.
	Image io.Reader

	// MediaType of Image. Empty means detect from content.
	MediaType string

	// Encoded may be set instead of Image when the caller already encoded it.
	Encoded *EncodedImage

	Prompt      Option
	Pose        string
	Custom      string
	AspectRatio AspectRatio
	Quality     string
}

// Manager fans a prompt and image out to FanOut concurrent generation calls
// and collects the images that came back.
type Manager struct {
	generator ImageGenerator

	// Model passed to the generator on each call
	model Model

	// Logger for structured logging (optional)
	logger *slog.Logger

	// Storage for downloading results (optional)
	storage Storage

	mu sync.RWMutex
}

// Ensure Manager implements the interfaces.
var _ BatchGenerator = (*Manager)(nil)

// New creates an empty Manager. Use NewManager to attach a generator.
func New() *Manager {
	return &Manager{
		logger: slog.Default(),
		model:  ModelDefault,
	}
}

// SetStorage sets a storage backend for downloading results.
func (m *Manager) SetStorage(storage Storage) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.storage = storage
	return m
}

// Storage returns the configured storage backend, or nil if not set.
func (m *Manager) Storage() Storage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.storage
}

// Model returns the model passed to the generator.
func (m *Manager) Model() Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.model
}

// SaveResults saves batch results to the configured storage.
// If no storage is configured, returns ErrStorageNotConfigured.
func (m *Manager) SaveResults(ctx context.Context, uris []string, basePath string) ([]StorageResult, error) {
	return SaveAll(ctx, m.Storage(), uris, basePath)
}

// GenerateVariations composes the option's prompt with the given settings and runs a batch.
func (m *Manager) GenerateVariations(ctx context.Context, image io.Reader, mediaType string, prompt Option, aspectRatio AspectRatio, quality string) ([]string, error) {
	return m.GenerateBatch(ctx, BatchRequest{
		Image:       image,
		MediaType:   mediaType,
		Prompt:      prompt,
		AspectRatio: aspectRatio,
		Quality:     quality,
	})
}

// GenerateBatch composes the prompt and encodes the image once, then issues FanOut
// generation calls concurrently and waits for all of them.
//
// The returned slice holds the successful results in call order and may be empty.
// Only a missing prompt or an image that cannot be read and encoded is returned as
// an error. Anything the provider rejects, including unsupported formats or sizes,
// fails inside its call and is logged and dropped.
func (m *Manager) GenerateBatch(ctx context.Context, req BatchRequest) ([]string, error) {
	m.mu.RLock()
	gen, model, logger := m.generator, m.model, m.logger
	m.mu.RUnlock()

	if gen == nil {
		return nil, ErrGeneratorNotConfigured
	}

	batchID := uuid.NewString()
	logger = logger.With("batch_id", batchID)

	if err := ValidatePrompt(req.Prompt.Value + req.Custom); err != nil {
		return nil, err
	}
	prompt := Compose(PromptInput{
		Base:        req.Prompt.Value,
		Pose:        req.Pose,
		Custom:      req.Custom,
		AspectRatio: req.AspectRatio,
		Quality:     req.Quality,
	})

	encoded, err := m.encode(ctx, req)
	if err != nil {
		logger.Error("failed to encode source image", "error", err.Error())
		return nil, err
	}

	input, err := encoded.InputImage()
	if err != nil {
		return nil, err
	}
	if err := ValidateSourceImage(input); err != nil {
		return nil, err
	}

	logger.Debug("starting batch",
		"model", string(model),
		"prompt_option", req.Prompt.ID,
		"prompt_length", len(prompt),
		"image_size", len(input.Data),
		"calls", FanOut,
	)

	client := NewClient(gen, model, logger)
	start := time.Now()

	results := make([]string, FanOut)
	outcomes := make([]Outcome, FanOut)

	// Calls report failure through outcomes, never through the group,
	// so one failure does not cancel the others.
	var g errgroup.Group
	for i := 0; i < FanOut; i++ {
		g.Go(func() error {
			results[i], outcomes[i] = client.generateInput(ctx, input, prompt, map[string]string{
				MetadataBatchID: batchID,
				MetadataCall:    strconv.Itoa(i),
			})
			return nil
		})
	}
	_ = g.Wait()

	images := make([]string, 0, FanOut)
	counts := make(map[Outcome]int, 4)
	for i, uri := range results {
		counts[outcomes[i]]++
		if outcomes[i] == OutcomeImage {
			images = append(images, uri)
		}
	}

	logger.Info("batch completed",
		"model", string(model),
		"duration_ms", time.Since(start).Milliseconds(),
		"image_count", len(images),
		"no_image", counts[OutcomeNoImage],
		"failed", counts[OutcomeFailed],
		"rate_limited", counts[OutcomeRateLimited],
	)

	return images, nil
}

// encode returns the request's encoded image, encoding Image if needed.
func (m *Manager) encode(ctx context.Context, req BatchRequest) (EncodedImage, error) {
	if req.Encoded != nil {
		return *req.Encoded, nil
	}
	if req.Image == nil {
		return EncodedImage{}, ErrEmptyImageData
	}

	encoded, err := EncodeImage(ctx, req.Image, req.MediaType)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("encode image: %w", err)
	}
	return encoded, nil
}

// Models returns the generator's model definitions.
func (m *Manager) Models() []ModelInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.generator == nil {
		return nil
	}
	return m.generator.Models()
}

// Close releases the generator's resources.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generator == nil {
		return nil
	}
	err := m.generator.Close()
	m.generator = nil
	if err != nil {
		return fmt.Errorf("closing generator: %w", err)
	}
	return nil
}
