package portraitgen

// Provider represents a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
)

// ModelCapabilities describes what features a model supports.
type ModelCapabilities struct {
	SupportsImageEditing bool
}

// ImageConstraints defines supported image configurations for a model.
type ImageConstraints struct {
	SupportedAspectRatios []AspectRatio
}

// ModelInfo contains metadata for a model.
type ModelInfo struct {
	Name         string   // Public model name
	Provider     Provider // Which provider serves this model
	APIModelName string   // Actual API name (e.g., "gemini-2.5-flash-image-preview")

	Capabilities     ModelCapabilities
	ImageConstraints ImageConstraints
}

// SupportsAspectRatio reports whether ar is listed in the model's constraints.
// A model without listed constraints accepts any ratio.
func (m ModelInfo) SupportsAspectRatio(ar AspectRatio) bool {
	if len(m.ImageConstraints.SupportedAspectRatios) == 0 {
		return true
	}
	for _, s := range m.ImageConstraints.SupportedAspectRatios {
		if s == ar {
			return true
		}
	}
	return false
}
