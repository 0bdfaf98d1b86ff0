package gemini

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mhpenta/portraitgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotContents = contents
	f.gotConfig = config
	return f.resp, f.err
}

func imageResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

var testImage = portraitgen.InputImage{Data: []byte("jpeg-bytes"), MIMEType: "image/jpeg"}

func TestGeminiGenerator_Edit_Request(t *testing.T) {
	fake := &fakeModels{resp: imageResponse(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("png")}})}
	g := &GeminiGenerator{models: fake}

	_, err := g.Edit(context.Background(), testImage, "make it festive", nil)
	require.NoError(t, err)

	assert.Equal(t, APIModelFlashImagePreview, fake.gotModel)
	require.Len(t, fake.gotContents, 1)

	parts := fake.gotContents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData, "image part must come first")
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte("jpeg-bytes"), parts[0].InlineData.Data)
	assert.Equal(t, "make it festive", parts[1].Text)

	require.NotNil(t, fake.gotConfig)
	assert.ElementsMatch(t, []string{"IMAGE", "TEXT"}, fake.gotConfig.ResponseModalities)
}

func TestGeminiGenerator_Edit_ModelOverride(t *testing.T) {
	fake := &fakeModels{resp: imageResponse()}
	g := &GeminiGenerator{models: fake}

	_, err := g.Edit(context.Background(), testImage, "prompt", &portraitgen.GenerateConfig{Model: APIModelFlashImage})
	require.NoError(t, err)
	assert.Equal(t, APIModelFlashImage, fake.gotModel)
}

func TestGeminiGenerator_Edit_Validation(t *testing.T) {
	g := &GeminiGenerator{models: &fakeModels{}}

	_, err := g.Edit(context.Background(), testImage, "", nil)
	assert.ErrorIs(t, err, portraitgen.ErrEmptyPrompt)

	_, err = g.Edit(context.Background(), portraitgen.InputImage{MIMEType: "image/png"}, "prompt", nil)
	assert.ErrorIs(t, err, portraitgen.ErrEmptyImageData)
}

func TestParseResult(t *testing.T) {
	t.Run("first image part wins and order is kept", func(t *testing.T) {
		res, err := parseResult(imageResponse(
			&genai.Part{Text: "here you go"},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("second")}},
		))
		require.NoError(t, err)

		img, ok := res.FirstImage()
		require.True(t, ok)
		assert.Equal(t, []byte("first"), img.Data)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Len(t, res.Images, 2)
		assert.Equal(t, 1, res.Images[1].Index)
		assert.Equal(t, "here you go", res.Text)
	})

	t.Run("text only is not an error", func(t *testing.T) {
		res, err := parseResult(imageResponse(&genai.Part{Text: "I can't edit this photo."}))
		require.NoError(t, err)

		_, ok := res.FirstImage()
		assert.False(t, ok)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := parseResult(&genai.GenerateContentResponse{})
		assert.Error(t, err)
	})

	t.Run("usage metadata", func(t *testing.T) {
		resp := imageResponse(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("x")}})
		resp.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 1290,
			TotalTokenCount:      1300,
		}

		res, err := parseResult(resp)
		require.NoError(t, err)
		require.NotNil(t, res.UsageMetadata)
		assert.Equal(t, 1300, res.UsageMetadata.TotalTokens)
		assert.Equal(t, 1, res.UsageMetadata.ImageCount)
	})
}

func TestGeminiGenerator_Edit_Errors(t *testing.T) {
	t.Run("quota exhaustion becomes RateLimitError", func(t *testing.T) {
		fake := &fakeModels{err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}}
		g := &GeminiGenerator{models: fake}

		_, err := g.Edit(context.Background(), testImage, "prompt", nil)
		require.Error(t, err)
		assert.True(t, portraitgen.IsRateLimitError(err))
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		g := &GeminiGenerator{models: &fakeModels{err: cause}}

		_, err := g.Edit(context.Background(), testImage, "prompt", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.False(t, portraitgen.IsRateLimitError(err))
	})
}

func TestModels_DefaultFirst(t *testing.T) {
	g := &GeminiGenerator{}
	models := g.Models()

	require.NotEmpty(t, models)
	assert.Equal(t, APIModelFlashImagePreview, models[0].APIModelName)
	assert.True(t, models[0].SupportsAspectRatio(portraitgen.AspectRatio9x16))
}

func TestGeminiGenerator_UnsupportedFormatStaysInsideCall(t *testing.T) {
	fake := &fakeModels{resp: imageResponse()}
	g := &GeminiGenerator{models: fake}

	_, err := g.Edit(context.Background(), portraitgen.InputImage{Data: []byte("BM"), MIMEType: "image/bmp"}, "prompt", nil)
	assert.ErrorIs(t, err, portraitgen.ErrInvalidMIMEType)

	manager := portraitgen.NewManager(g)
	images, err := manager.GenerateBatch(context.Background(), portraitgen.BatchRequest{
		Image:     bytes.NewReader([]byte("BM bitmap body")),
		MediaType: "image/bmp",
		Prompt:    portraitgen.KidPromptOptions[0],
	})

	require.NoError(t, err)
	assert.Empty(t, images)
	assert.Empty(t, fake.gotModel, "nothing reaches the service")
}
