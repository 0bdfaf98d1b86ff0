package gemini

import "github.com/mhpenta/portraitgen"

var portraitAspectRatios = []portraitgen.AspectRatio{
	portraitgen.AspectRatio1x1,
	portraitgen.AspectRatio3x4,
	portraitgen.AspectRatio9x16,
}

// FlashImagePreviewInfo is the model info for the Gemini 2.5 Flash Image preview.
// It edits a source image from a text instruction and returns inline image parts.
var FlashImagePreviewInfo = portraitgen.ModelInfo{
	Name:         "flash-image-preview",
	Provider:     portraitgen.ProviderGeminiAPI,
	APIModelName: APIModelFlashImagePreview,

	Capabilities: portraitgen.ModelCapabilities{
		SupportsImageEditing: true,
	},

	ImageConstraints: portraitgen.ImageConstraints{
		SupportedAspectRatios: portraitAspectRatios,
	},
}

var FlashImageInfo = portraitgen.ModelInfo{
	Name:         "flash-image",
	Provider:     portraitgen.ProviderGeminiAPI,
	APIModelName: APIModelFlashImage,

	Capabilities: portraitgen.ModelCapabilities{
		SupportsImageEditing: true,
	},

	ImageConstraints: portraitgen.ImageConstraints{
		SupportedAspectRatios: portraitAspectRatios,
	},
}
