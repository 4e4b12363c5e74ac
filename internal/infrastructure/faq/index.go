// Package faq implements nearest-neighbor answer retrieval over the
// knowledge base's question column.
package faq

import (
	"context"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/textvec"
)

// FallbackAnswer is returned when the knowledge base holds no entries.
const FallbackAnswer = "I don't have an answer for that yet. Please reach out to our support team."

// Index is a fixed lexical vector space over all FAQ questions. Built once,
// then read-only; concurrent Answer calls are safe.
type Index struct {
	entries    []domain.FAQEntry
	vectorizer *textvec.Vectorizer
	questions  []map[int]float64
}

// NewIndex fits one TF-IDF space over every entry's question and embeds the
// whole corpus once.
func NewIndex(entries []domain.FAQEntry) *Index {
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Question
	}
	vectorizer := textvec.Fit(texts)
	return &Index{
		entries:    entries,
		vectorizer: vectorizer,
		questions:  vectorizer.TransformAll(texts),
	}
}

// Answer returns the answer of the most similar question, scoped to entries
// tagged with the requested intent. An empty scope falls back to the full
// entry set, so a policy intent without authored entries still answers
// instead of refusing. Ties keep the earliest entry. An empty knowledge base
// yields FallbackAnswer.
func (ix *Index) Answer(_ context.Context, query string, intent domain.Intent) string {
	if len(ix.entries) == 0 {
		return FallbackAnswer
	}

	candidates := make([]int, 0, len(ix.entries))
	for i, entry := range ix.entries {
		if entry.Intent == string(intent) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i := range ix.entries {
			candidates = append(candidates, i)
		}
	}

	queryVec := ix.vectorizer.Transform(query)
	best := candidates[0]
	bestScore := textvec.Cosine(queryVec, ix.questions[best])
	for _, i := range candidates[1:] {
		if score := textvec.Cosine(queryVec, ix.questions[i]); score > bestScore {
			best, bestScore = i, score
		}
	}
	return ix.entries[best].Answer
}

// Size reports the number of indexed entries.
func (ix *Index) Size() int {
	return len(ix.entries)
}
