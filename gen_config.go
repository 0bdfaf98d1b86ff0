package portraitgen

// Model represents a specific image generation model.
type Model string

// AspectRatio represents the aspect ratio requested for generated portraits.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio3x4  AspectRatio = "3:4"  // Vertical portrait
	AspectRatio9x16 AspectRatio = "9:16" // Tall vertical portrait
)

// FanOut is the number of independent generation calls issued per batch.
const FanOut = 4

// GenerateConfig holds configuration options for a single generation call.
type GenerateConfig struct {
	// Model to use for generation (if empty, uses the provider's default)
	Model Model

	// Metadata to attach to requests (for logging/tracking)
	Metadata map[string]string
}

// InputImage represents raw image input for editing operations.
type InputImage struct {
	// Data is the raw image bytes
	Data []byte

	// MIMEType of the image (e.g., "image/jpeg", "image/png")
	MIMEType string
}

// String returns the string representation for prompts and logs.
func (a AspectRatio) String() string {
	return string(a)
}

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}
