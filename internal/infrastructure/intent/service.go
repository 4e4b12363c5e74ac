package intent

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
	"github.com/mkuznet/shop-assistant/internal/core/ports"
)

// Service owns the served model and the retrain/reload lifecycle. Predict
// takes the read lock; swapping in a new model is the only writer, so
// concurrent inference calls run in parallel against an immutable model.
type Service struct {
	source ports.TrainingSource
	store  ports.ArtifactStorage
	key    string

	mu    sync.RWMutex
	model *Model
}

func NewService(source ports.TrainingSource, store ports.ArtifactStorage, key string) *Service {
	return &Service{source: source, store: store, key: key}
}

// Bootstrap loads the persisted artifact, or lazily trains one when no
// artifact exists yet. The returned bool reports whether training ran.
func (s *Service) Bootstrap(ctx context.Context) (domain.EvaluationReport, bool, error) {
	exists, err := s.store.Exists(ctx, s.key)
	if err != nil {
		return domain.EvaluationReport{}, false, fmt.Errorf("check model artifact: %w", err)
	}
	if exists {
		if err := s.Reload(ctx); err != nil {
			return domain.EvaluationReport{}, false, err
		}
		return domain.EvaluationReport{}, false, nil
	}

	report, err := s.Retrain(ctx)
	if err != nil {
		return domain.EvaluationReport{}, false, err
	}
	return report, true, nil
}

// Retrain fits a fresh model from the corpus, persists it and swaps it in.
func (s *Service) Retrain(ctx context.Context) (domain.EvaluationReport, error) {
	corpus, err := s.source.ListTrainingExamples(ctx)
	if err != nil {
		return domain.EvaluationReport{}, err
	}

	model, report, err := Train(corpus)
	if err != nil {
		return domain.EvaluationReport{}, err
	}

	var buf bytes.Buffer
	if err := EncodeModel(&buf, model); err != nil {
		return domain.EvaluationReport{}, err
	}
	if err := s.store.Save(ctx, s.key, &buf); err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("persist model artifact: %w", err)
	}

	s.swap(model)
	return report, nil
}

// Reload replaces the served model with the persisted artifact.
func (s *Service) Reload(ctx context.Context) error {
	rc, err := s.store.Open(ctx, s.key)
	if err != nil {
		return domain.WrapError(domain.ErrDataUnavailable, "open model artifact", err)
	}
	defer rc.Close()

	model, err := DecodeModel(rc)
	if err != nil {
		return domain.WrapError(domain.ErrDataUnavailable, "load model artifact", err)
	}
	s.swap(model)
	return nil
}

// Predict returns the top label for the utterance, always from the closed set.
func (s *Service) Predict(_ context.Context, text string) domain.Intent {
	s.mu.RLock()
	model := s.model
	s.mu.RUnlock()
	if model == nil {
		return domain.IntentFallback
	}
	return model.Predict(text)
}

func (s *Service) swap(model *Model) {
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}
