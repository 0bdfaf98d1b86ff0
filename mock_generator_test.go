package portraitgen

import (
	"context"
)

// MockImageGenerator is a mock implementation of ImageGenerator.
type MockImageGenerator struct {
	EditFunc   func(ctx context.Context, image InputImage, instruction string, config *GenerateConfig) (*GenerateResult, error)
	ModelsFunc func() []ModelInfo
	CloseFunc  func() error
}

func (m *MockImageGenerator) Edit(ctx context.Context, image InputImage, instruction string, config *GenerateConfig) (*GenerateResult, error) {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, image, instruction, config)
	}
	return &GenerateResult{}, nil
}

func (m *MockImageGenerator) Models() []ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []ModelInfo{}
}

func (m *MockImageGenerator) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func imageResult(mimeType string, data []byte) *GenerateResult {
	return &GenerateResult{
		Images: []GeneratedImage{{Data: data, MIMEType: mimeType}},
	}
}
