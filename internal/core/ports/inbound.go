package ports

import (
	"context"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

// ConversationService is the inbound contract for answering one utterance.
// For a well-formed input it always produces a reply string; errors are
// reserved for malformed requests.
type ConversationService interface {
	Handle(ctx context.Context, utterance string) (domain.Reply, error)
}

// IntentTrainer retrains the intent model from the current corpus and
// persists the resulting artifact.
type IntentTrainer interface {
	Retrain(ctx context.Context) (domain.EvaluationReport, error)
}

// ModelReloader swaps the served intent model for the persisted artifact.
type ModelReloader interface {
	Reload(ctx context.Context) error
}
