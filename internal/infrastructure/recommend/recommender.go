// Package recommend implements the constrained product recommender: budget
// and category hints parsed from free text, catalog filtering, and lexical
// similarity ranking.
package recommend

import (
	"context"
	"sort"
	"strings"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/textvec"
)

// Recommender ranks a read-only catalog against per-query constraints.
// Every call works on freshly allocated data, so concurrent calls are safe.
type Recommender struct {
	catalog  []domain.Product
	keywords []CategoryKeywords
}

func New(catalog []domain.Product, keywords []CategoryKeywords) *Recommender {
	if len(keywords) == 0 {
		keywords = DefaultCategoryKeywords()
	}
	return &Recommender{catalog: catalog, keywords: keywords}
}

// Recommend filters the catalog by the guessed category and parsed budget,
// then ranks by cosine similarity with rating as the tie-break. If the
// filters empty the candidate set the full catalog is ranked instead, so an
// over-constrained query still answers. Only an empty catalog yields an
// empty result.
//
// The vector space is re-fitted per query over exactly the filtered rows:
// the candidate set already varies per query, and fitting over the live pool
// keeps term weights relevant at the cost of repeated work.
func (r *Recommender) Recommend(_ context.Context, query string, topK int) []domain.ScoredProduct {
	if len(r.catalog) == 0 {
		return nil
	}
	if topK <= 0 {
		topK = 3
	}

	candidates := r.filter(query)
	if len(candidates) == 0 {
		candidates = r.catalog
	}

	corpus := make([]string, len(candidates))
	for i, p := range candidates {
		corpus[i] = p.Name + " " + p.Tags + " " + p.Description
	}
	vectorizer := textvec.Fit(corpus)
	vectors := vectorizer.TransformAll(corpus)
	queryVec := vectorizer.Transform(query)

	scored := make([]domain.ScoredProduct, len(candidates))
	for i, p := range candidates {
		scored[i] = domain.ScoredProduct{
			Product: p,
			Score:   textvec.Cosine(queryVec, vectors[i]),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Rating > scored[j].Rating
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func (r *Recommender) filter(query string) []domain.Product {
	category, hasCategory := GuessCategory(query, r.keywords)
	budget, hasBudget := ParseBudget(query)

	out := make([]domain.Product, 0, len(r.catalog))
	for _, p := range r.catalog {
		if hasCategory && !strings.EqualFold(p.Category, category) {
			continue
		}
		if hasBudget && p.Price > budget {
			continue
		}
		out = append(out, p)
	}
	return out
}
