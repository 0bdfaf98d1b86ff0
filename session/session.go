// Package session holds the form state of one interactive generation session:
// the user's selections, the loading flag, the message shown to the user and the
// results grid with its full-screen preview.
//
// Nothing here is persisted. A Session is safe for concurrent use.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/mhpenta/portraitgen"
)

// Messages shown to the user.
const (
	MessageNoImage   = "Please choose a photo to get started."
	MessageNoResults = "Could not create images. Please try again with a different photo or options."
	MessageFailure   = "Something went wrong. Please try again."
)

var (
	// ErrNoResult is returned when a result index is out of range.
	ErrNoResult = errors.New("no result at index")

	// ErrBusy is returned when Generate is called while a batch is running.
	ErrBusy = errors.New("generation already in progress")
)

// SourceImage is the photo chosen by the user.
type SourceImage struct {
	Name      string
	MediaType string
	Data      []byte
}

// Session is the state behind the generation form.
type Session struct {
	generator portraitgen.BatchGenerator
	logger    *slog.Logger

	mu sync.Mutex

	source         *SourceImage
	tab            portraitgen.ConceptTab
	selectedPrompt portraitgen.Option
	aspectRatio    portraitgen.Option
	quality        portraitgen.Option
	customPrompt   string
	pose           string

	results []string
	loading bool
	message string
	preview string
}

// New creates a Session with the default selections: kids tab, first concept,
// first aspect ratio and first quality.
func New(generator portraitgen.BatchGenerator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		generator:      generator,
		logger:         logger,
		tab:            portraitgen.ConceptTabKids,
		selectedPrompt: portraitgen.KidPromptOptions[0],
		aspectRatio:    portraitgen.AspectRatioOptions[0],
		quality:        portraitgen.QualityOptions[0],
	}
}

// SelectFile sets the source photo.
func (s *Session) SelectFile(img SourceImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = &img
}

// SelectFileFrom reads the source photo from r. An empty mediaType is taken from the
// name's extension; if that is unknown too it stays empty and is detected from the content.
func (s *Session) SelectFileFrom(name, mediaType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if mediaType == "" {
		mediaType = portraitgen.MIMETypeFromExt(name)
	}
	s.SelectFile(SourceImage{Name: name, MediaType: mediaType, Data: data})
	return nil
}

// SetConceptTab switches concept catalogs and selects the tab's first concept.
func (s *Session) SetConceptTab(tab portraitgen.ConceptTab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
	s.selectedPrompt = portraitgen.ConceptOptions(tab)[0]
}

// ConceptOptions returns the concepts of the active tab.
func (s *Session) ConceptOptions() []portraitgen.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return portraitgen.ConceptOptions(s.tab)
}

// SelectPrompt selects a concept.
func (s *Session) SelectPrompt(o portraitgen.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedPrompt = o
}

// SetPose sets the optional pose modification.
func (s *Session) SetPose(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pose = text
}

// SetCustomPrompt sets the free-form prompt. When non-blank it overrides the
// selected concept and the pose modification.
func (s *Session) SetCustomPrompt(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customPrompt = text
}

// SelectAspectRatio selects an aspect ratio option.
func (s *Session) SelectAspectRatio(o portraitgen.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aspectRatio = o
}

// SelectQuality selects a quality option.
func (s *Session) SelectQuality(o portraitgen.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quality = o
}

// CanGenerate reports whether the generate action is enabled.
func (s *Session) CanGenerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source != nil && !s.loading
}

// Generate runs one batch with the current selections.
//
// Without a source photo it only sets MessageNoImage. Otherwise previous results and
// messages are cleared, the loading flag is held for the duration of the batch, and
// the outcome is reflected in Results and Message. The returned error is the
// orchestrator's, for callers that log it; the user-facing state is already updated.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()
	if s.source == nil {
		s.message = MessageNoImage
		s.mu.Unlock()
		return nil
	}
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}

	req := s.buildRequest()
	s.loading = true
	s.message = ""
	s.results = nil
	s.preview = ""
	s.mu.Unlock()

	images, err := s.generator.GenerateBatch(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.logger.Error("generation failed", "error", err.Error())
		s.message = MessageFailure
		return err
	}

	s.results = images
	if len(images) == 0 {
		s.message = MessageNoResults
	}
	return nil
}

// buildRequest applies the precedence rules: a non-blank custom prompt replaces the
// concept and drops the pose. Callers hold s.mu.
func (s *Session) buildRequest() portraitgen.BatchRequest {
	req := portraitgen.BatchRequest{
		Image:       bytes.NewReader(s.source.Data),
		MediaType:   s.source.MediaType,
		Prompt:      s.selectedPrompt,
		Pose:        s.pose,
		AspectRatio: portraitgen.AspectRatio(s.aspectRatio.Value),
		Quality:     s.quality.Value,
	}

	if custom := portraitgen.CustomOption(s.customPrompt); custom.Value != "" {
		req.Prompt = custom
		req.Pose = ""
	}
	return req
}

// Results returns a copy of the current results.
func (s *Session) Results() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.results...)
}

// Loading reports whether a batch is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Message returns the message currently shown to the user, or "".
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// OpenPreview shows result i full-screen.
func (s *Session) OpenPreview(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.results) {
		return fmt.Errorf("%w: %d", ErrNoResult, i)
	}
	s.preview = s.results[i]
	return nil
}

// ClosePreview hides the full-screen preview.
func (s *Session) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = ""
}

// Preview returns the previewed result and whether the preview is open.
func (s *Session) Preview() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview, s.preview != ""
}

// Download saves result i to storage as "{baseName}-{i+1}.{ext}".
func (s *Session) Download(ctx context.Context, i int, storage portraitgen.Storage, baseName string) (portraitgen.StorageResult, error) {
	s.mu.Lock()
	if i < 0 || i >= len(s.results) {
		s.mu.Unlock()
		return portraitgen.StorageResult{}, fmt.Errorf("%w: %d", ErrNoResult, i)
	}
	uri := s.results[i]
	s.mu.Unlock()

	return portraitgen.SaveDataURI(ctx, storage, uri, baseName+"-"+strconv.Itoa(i+1))
}
