// Package textvec implements the lexical vector space shared by the intent
// classifier, the FAQ retriever and the product recommender: weighted
// unigram+bigram frequencies fitted once over a reference corpus, reused to
// project new text for cosine comparison.
package textvec

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer is a fitted TF-IDF space. Fields are exported so a fitted
// instance can travel inside a persisted model artifact; after fitting it is
// read-only and safe for concurrent Transform calls.
type Vectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

// Fit builds the vocabulary and document frequencies over the corpus.
// Minimum document frequency is 1: every observed term enters the space.
func Fit(docs []string) *Vectorizer {
	df := make(map[string]int, 256)
	for _, doc := range docs {
		seen := make(map[string]struct{}, 32)
		for _, term := range Features(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocab[term] = i
		// Smoothed IDF keeps weights finite for terms present in every document.
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return &Vectorizer{Vocabulary: vocab, IDF: idf}
}

// Transform projects a document into the fitted space as an L2-normalized
// sparse TF-IDF vector. Terms outside the vocabulary are dropped.
func (v *Vectorizer) Transform(doc string) map[int]float64 {
	counts := make(map[int]float64, 32)
	for _, term := range Features(doc) {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return counts
	}

	var norm float64
	for idx, tf := range counts {
		w := tf * v.IDF[idx]
		counts[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return counts
	}
	for idx := range counts {
		counts[idx] /= norm
	}
	return counts
}

// TransformAll projects every document in order.
func (v *Vectorizer) TransformAll(docs []string) []map[int]float64 {
	out := make([]map[int]float64, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// Cosine is the normalized dot product of two sparse vectors.
func Cosine(a, b map[int]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot, normA, normB float64
	for idx, va := range a {
		normA += va * va
		if vb, ok := b[idx]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Features yields unigram and bigram terms for a document.
func Features(doc string) []string {
	tokens := Tokenize(doc)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Tokenize lower-cases and splits on anything outside [a-z0-9].
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
