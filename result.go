package portraitgen

// GeneratedImage represents a single generated image result.
type GeneratedImage struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the generated image
	MIMEType string

	// Index is the position among the image parts of the response (0-indexed)
	Index int
}

// DataURI returns the image as a self-contained data URI.
func (g GeneratedImage) DataURI() string {
	return DataURI(g.MIMEType, encodeBase64(g.Data))
}

// GenerateResult holds the complete result of one generation call.
type GenerateResult struct {
	// Images contains all generated images, in response part order
	Images []GeneratedImage

	// Text contains any text response from the model
	Text string

	// UsageMetadata contains token/billing information
	UsageMetadata *UsageMetadata
}

// FirstImage returns the first image carried by the result.
func (r *GenerateResult) FirstImage() (GeneratedImage, bool) {
	if r == nil || len(r.Images) == 0 {
		return GeneratedImage{}, false
	}
	return r.Images[0], true
}

// UsageMetadata contains usage information for billing and monitoring.
type UsageMetadata struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
	ImageCount       int
}
