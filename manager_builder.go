package portraitgen

import (
	"log/slog"
)

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets a structured logger for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStorage sets a storage backend for downloading results.
func WithStorage(storage Storage) ManagerOption {
	return func(m *Manager) {
		m.storage = storage
	}
}

// WithModel sets the model passed to the generator on each call.
func WithModel(model Model) ManagerOption {
	return func(m *Manager) {
		if model != "" {
			m.model = model
		}
	}
}

// NewManager creates a Manager around a generator.
//
// The generator's first model becomes the Manager's model unless WithModel is given.
//
// Example:
//
//	gen, err := gemini.NewWithAPIKey(ctx, apiKey)
//	if err != nil {
//	    return err
//	}
//	manager := portraitgen.NewManager(gen,
//	    portraitgen.WithLogger(slog.Default()),
//	)
//	images, err := manager.GenerateVariations(ctx, file, "", portraitgen.KidPromptOptions[0],
//	    portraitgen.AspectRatio1x1, "High")
func NewManager(generator ImageGenerator, opts ...ManagerOption) *Manager {
	m := New()
	m.generator = generator

	if generator != nil {
		if models := generator.Models(); len(models) > 0 && models[0].APIModelName != "" {
			m.model = Model(models[0].APIModelName)
		}
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}
