package domain

// FAQEntry is a question/answer pair optionally tagged with an intent.
// The intent tag is stored as written in the source data: tags outside the
// closed set never match a requested scope, so retrieval falls back to the
// full entry set for them.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Intent   string `json:"intent,omitempty"`
}

// Product is one read-only catalog row.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Tags        string  `json:"tags,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ScoredProduct is a per-query ranking result.
type ScoredProduct struct {
	Product
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// Reply is the dispatcher's answer to one utterance.
type Reply struct {
	Text   string `json:"text"`
	Intent Intent `json:"intent"`
}
