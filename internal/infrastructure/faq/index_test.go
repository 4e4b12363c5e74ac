package faq

import (
	"context"
	"testing"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

func fixtureEntries() []domain.FAQEntry {
	return []domain.FAQEntry{
		{Question: "do you ship internationally", Answer: "We ship to over 40 countries.", Intent: "shipping_policy"},
		{Question: "how long does delivery take", Answer: "Delivery takes 3-5 business days.", Intent: "shipping_policy"},
		{Question: "what is the return window", Answer: "Returns are accepted within 30 days.", Intent: "return_policy"},
		{Question: "how do i claim warranty", Answer: "Warranty claims go through the service center.", Intent: "warranty"},
	}
}

func TestAnswerScopedToIntent(t *testing.T) {
	ix := NewIndex(fixtureEntries())
	got := ix.Answer(context.Background(), "how long will delivery take", domain.IntentShippingPolicy)
	if got != "Delivery takes 3-5 business days." {
		t.Fatalf("Answer() = %q", got)
	}
}

func TestAnswerScopePreventsCrossTopicBleed(t *testing.T) {
	ix := NewIndex(fixtureEntries())
	// Lexically closest to the shipping questions, but warranty scope must
	// stay within warranty entries.
	got := ix.Answer(context.Background(), "do you ship warranty claims internationally", domain.IntentWarranty)
	if got != "Warranty claims go through the service center." {
		t.Fatalf("Answer() = %q, expected warranty-scoped answer", got)
	}
}

func TestAnswerUnscopedIntentFallsBackToFullSet(t *testing.T) {
	ix := NewIndex(fixtureEntries())
	// No entries tagged store_hours: search the whole knowledge base instead.
	got := ix.Answer(context.Background(), "what is the return window", domain.IntentStoreHours)
	if got != "Returns are accepted within 30 days." {
		t.Fatalf("Answer() = %q, expected full-set fallback match", got)
	}
}

func TestAnswerEmptyKnowledgeBase(t *testing.T) {
	ix := NewIndex(nil)
	if got := ix.Answer(context.Background(), "anything", domain.IntentPayment); got != FallbackAnswer {
		t.Fatalf("Answer() = %q, want fixed fallback", got)
	}
}

func TestAnswerTieKeepsFirstEntry(t *testing.T) {
	entries := []domain.FAQEntry{
		{Question: "payment methods", Answer: "first", Intent: "payment"},
		{Question: "payment methods", Answer: "second", Intent: "payment"},
	}
	ix := NewIndex(entries)
	if got := ix.Answer(context.Background(), "payment methods", domain.IntentPayment); got != "first" {
		t.Fatalf("Answer() = %q, want first entry on tie", got)
	}
}

func TestAnswerAlwaysFromSourceData(t *testing.T) {
	entries := fixtureEntries()
	known := map[string]struct{}{FallbackAnswer: {}}
	for _, entry := range entries {
		known[entry.Answer] = struct{}{}
	}
	ix := NewIndex(entries)

	queries := []string{"", "unrelated gibberish", "ship", "warranty", "return my item"}
	for _, query := range queries {
		for _, intent := range domain.AllIntents() {
			got := ix.Answer(context.Background(), query, intent)
			if _, ok := known[got]; !ok {
				t.Fatalf("Answer(%q, %s) = %q not present in source data", query, intent, got)
			}
		}
	}
}

func TestAnswerOutOfDomainStoredTagNeverMatchesScope(t *testing.T) {
	entries := []domain.FAQEntry{
		{Question: "mystery question", Answer: "mystery answer", Intent: "not_a_real_intent"},
		{Question: "when are you open", Answer: "We are open 9 to 9.", Intent: "store_hours"},
	}
	ix := NewIndex(entries)
	got := ix.Answer(context.Background(), "when are you open", domain.IntentStoreHours)
	if got != "We are open 9 to 9." {
		t.Fatalf("Answer() = %q", got)
	}
}
