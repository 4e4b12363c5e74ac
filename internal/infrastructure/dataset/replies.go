package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
	"github.com/mkuznet/shop-assistant/internal/infrastructure/recommend"
)

// DefaultReplies is the static default-reply table for the smalltalk intents.
func DefaultReplies() map[domain.Intent]string {
	return map[domain.Intent]string{
		domain.IntentGreeting: "Hi! How can I help you today? You can ask about shipping, returns, warranty, payments, or ask for product suggestions.",
		domain.IntentGoodbye:  "Goodbye! Have a great day.",
		domain.IntentThanks:   "You're welcome! Anything else I can help with?",
		domain.IntentFallback: "Hmm, I didn't quite get that. You can ask me about shipping, returns, warranty, payments, order tracking, or product recommendations.",
	}
}

// Overrides customizes the default replies and the category keyword table
// from an optional YAML file.
type Overrides struct {
	Replies    map[string]string            `yaml:"replies"`
	Categories []recommend.CategoryKeywords `yaml:"categories"`
}

// LoadOverrides reads the override file. An empty path means no overrides.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, domain.WrapError(domain.ErrDataUnavailable, "open overrides file", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return Overrides{}, fmt.Errorf("parse overrides file: %w", err)
	}
	return o, nil
}

// MergeReplies overlays override texts on the defaults. Override keys
// outside the smalltalk set are ignored; the table must keep full coverage.
func MergeReplies(overrides map[string]string) map[domain.Intent]string {
	replies := DefaultReplies()
	for raw, text := range overrides {
		intent := domain.ParseIntent(raw)
		if _, ok := replies[intent]; ok && text != "" && intent == domain.Intent(raw) {
			replies[intent] = text
		}
	}
	return replies
}

// CategoryTable returns the override table when present, the built-in one
// otherwise.
func (o Overrides) CategoryTable() []recommend.CategoryKeywords {
	if len(o.Categories) > 0 {
		return o.Categories
	}
	return recommend.DefaultCategoryKeywords()
}
