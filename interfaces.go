package portraitgen

import "context"

// ImageGenerator is the backend interface for image-to-image generation.
// Implement this interface to add support for new models or providers.
//
// The first model returned by Models() is considered the default model.
type ImageGenerator interface {
	// Edit produces new images from a source image and a text instruction.
	// The image is sent first, followed by the instruction, as one request.
	Edit(ctx context.Context, image InputImage, instruction string, genConfig *GenerateConfig) (*GenerateResult, error)

	// Models returns the model definitions supported by this provider.
	// The first model in the list is the default.
	Models() []ModelInfo

	// Close releases any resources held by the generator.
	Close() error
}

// BatchGenerator is what a presentation layer needs from the orchestrator.
type BatchGenerator interface {
	GenerateBatch(ctx context.Context, req BatchRequest) ([]string, error)
}
