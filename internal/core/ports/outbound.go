package ports

import (
	"context"
	"io"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

// IntentClassifier returns the top label for an utterance. The result is
// always drawn from the closed intent set.
type IntentClassifier interface {
	Predict(ctx context.Context, text string) domain.Intent
}

// FAQRetriever answers a policy question scoped to one intent. The result
// is always one of the knowledge base's own answers, or the retriever's
// fixed fallback text when the knowledge base is empty.
type FAQRetriever interface {
	Answer(ctx context.Context, query string, intent domain.Intent) string
}

// ProductRecommender ranks the catalog against constraints parsed from the
// query. An empty result means the catalog itself is empty.
type ProductRecommender interface {
	Recommend(ctx context.Context, query string, topK int) []domain.ScoredProduct
}

// ReplyPolisher rephrases a drafted reply through an external model.
// Failures leave the draft reply in effect.
type ReplyPolisher interface {
	Polish(ctx context.Context, question, draft string) (string, error)
}

// ArtifactStorage persists opaque model artifacts.
type ArtifactStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// TrainingSource supplies the labeled training corpus.
type TrainingSource interface {
	ListTrainingExamples(ctx context.Context) ([]domain.TrainingExample, error)
}

// KnowledgeSource supplies the FAQ knowledge base.
type KnowledgeSource interface {
	ListFAQEntries(ctx context.Context) ([]domain.FAQEntry, error)
}

// CatalogSource supplies the product catalog.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// MessageQueue publishes/consumes retrain requests.
type MessageQueue interface {
	PublishRetrainRequested(ctx context.Context, jobID string) error
	SubscribeRetrainRequested(ctx context.Context, handler func(context.Context, string) error) error
}
