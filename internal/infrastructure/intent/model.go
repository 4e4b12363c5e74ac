// Package intent implements the supervised intent classifier: a TF-IDF
// vectorization stage followed by a linear one-vs-rest model, trained offline
// and served read-only.
package intent

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/textvec"
)

// Model is the opaque, immutable artifact produced by Train. It is safe for
// concurrent Predict calls; nothing mutates it after training.
type Model struct {
	Vectorizer *textvec.Vectorizer
	Labels     []domain.Intent
	Weights    [][]float64
	Bias       []float64
}

// Predict vectorizes the text with the fitted vectorizer and returns the top
// label. Deterministic for a fixed model and input; ties go to the earlier
// label in canonical order. Text with no known terms maps to fallback.
func (m *Model) Predict(text string) domain.Intent {
	features := m.Vectorizer.Transform(text)
	if len(features) == 0 {
		return domain.IntentFallback
	}

	best := 0
	bestScore := m.score(0, features)
	for i := 1; i < len(m.Labels); i++ {
		if s := m.score(i, features); s > bestScore {
			best, bestScore = i, s
		}
	}
	return m.Labels[best]
}

func (m *Model) score(label int, features map[int]float64) float64 {
	w := m.Weights[label]
	s := m.Bias[label]
	for idx, v := range features {
		s += w[idx] * v
	}
	return s
}

// EncodeModel serializes a fitted model. The blob is versionless; the only
// guarantee is that DecodeModel reproduces identical Predict outputs.
func EncodeModel(w io.Writer, m *Model) error {
	if err := gob.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("encode intent model: %w", err)
	}
	return nil
}

// DecodeModel restores a model persisted with EncodeModel.
func DecodeModel(r io.Reader) (*Model, error) {
	var m Model
	if err := gob.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode intent model: %w", err)
	}
	if m.Vectorizer == nil || len(m.Labels) == 0 {
		return nil, fmt.Errorf("decode intent model: artifact is incomplete")
	}
	return &m, nil
}
