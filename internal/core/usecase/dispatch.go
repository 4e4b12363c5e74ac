package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
	"github.com/mkuznet/shop-assistant/internal/core/ports"
)

const defaultRecommendTopK = 3

var errEmptyUtterance = errors.New("empty utterance")

// Dispatcher routes one utterance to the component that can answer it:
// static replies for smalltalk, FAQ retrieval for policy questions, the
// catalog ranker for recommendation requests.
type Dispatcher struct {
	classifier  ports.IntentClassifier
	faq         ports.FAQRetriever
	recommender ports.ProductRecommender
	polisher    ports.ReplyPolisher
	replies     map[domain.Intent]string
	topK        int
}

func NewDispatcher(
	classifier ports.IntentClassifier,
	faq ports.FAQRetriever,
	recommender ports.ProductRecommender,
	replies map[domain.Intent]string,
	topK int,
) *Dispatcher {
	if replies == nil {
		replies = map[domain.Intent]string{}
	}
	if topK <= 0 {
		topK = defaultRecommendTopK
	}
	return &Dispatcher{
		classifier:  classifier,
		faq:         faq,
		recommender: recommender,
		replies:     replies,
		topK:        topK,
	}
}

// WithPolisher enables best-effort rephrasing of drafted replies. A failed
// polish call keeps the draft.
func (d *Dispatcher) WithPolisher(polisher ports.ReplyPolisher) *Dispatcher {
	d.polisher = polisher
	return d
}

func (d *Dispatcher) Handle(ctx context.Context, utterance string) (domain.Reply, error) {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return domain.Reply{}, domain.WrapError(domain.ErrInvalidInput, "handle utterance", errEmptyUtterance)
	}

	intent := d.classifier.Predict(ctx, text)
	reply := d.draft(ctx, text, intent)

	// Smalltalk replies are static text; only retrieved and generated
	// answers go through the polisher.
	if intent.Policy() || intent == domain.IntentProductRecommendation {
		reply = d.polish(ctx, text, reply)
	}

	return domain.Reply{
		Text:   reply,
		Intent: intent,
	}, nil
}

func (d *Dispatcher) draft(ctx context.Context, text string, intent domain.Intent) string {
	if intent.Smalltalk() {
		return d.staticReply(intent)
	}
	if intent.Policy() {
		return d.faq.Answer(ctx, text, intent)
	}
	if intent == domain.IntentProductRecommendation {
		return d.recommendationReply(ctx, text)
	}
	// Unexpected classifier output lands on the fallback reply.
	return d.staticReply(domain.IntentFallback)
}

func (d *Dispatcher) staticReply(intent domain.Intent) string {
	if reply, ok := d.replies[intent]; ok {
		return reply
	}
	return d.replies[domain.IntentFallback]
}

func (d *Dispatcher) recommendationReply(ctx context.Context, text string) string {
	picks := d.recommender.Recommend(ctx, text, d.topK)
	if len(picks) == 0 {
		return "I couldn't find matching products. Can you share your budget or category (phone, laptop, headphones, etc.)?"
	}

	var b strings.Builder
	b.WriteString("Here are some picks for you:")
	for _, p := range picks {
		b.WriteString("\n- ")
		b.WriteString(p.Name)
		b.WriteString(" (₹")
		b.WriteString(formatAmount(p.Price))
		b.WriteString(", rating ")
		b.WriteString(formatAmount(p.Rating))
		b.WriteString("/5): ")
		b.WriteString(p.Description)
	}
	return b.String()
}

func (d *Dispatcher) polish(ctx context.Context, question, draft string) string {
	if d.polisher == nil {
		return draft
	}
	polished, err := d.polisher.Polish(ctx, question, draft)
	if err != nil {
		slog.Warn("reply_polish_failed", "error", err)
		return draft
	}
	if strings.TrimSpace(polished) == "" {
		return draft
	}
	return polished
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
