package dataset

import (
	"testing"

	"github.com/mkuznet/shop-assistant/internal/core/domain"
)

func TestMergeReplies(t *testing.T) {
	merged := MergeReplies(map[string]string{
		"greeting":      "Welcome to the shop!",
		"return_policy": "should be ignored, not a smalltalk intent",
		"made_up":       "should be ignored entirely",
		"fallback":      "",
		"thanks":        "No problem.",
	})

	if merged[domain.IntentGreeting] != "Welcome to the shop!" {
		t.Fatalf("greeting override not applied: %q", merged[domain.IntentGreeting])
	}
	if merged[domain.IntentThanks] != "No problem." {
		t.Fatalf("thanks override not applied: %q", merged[domain.IntentThanks])
	}
	if merged[domain.IntentFallback] == "" {
		t.Fatalf("empty override must not erase the fallback reply")
	}
	if merged[domain.IntentGoodbye] != DefaultReplies()[domain.IntentGoodbye] {
		t.Fatalf("untouched key changed: %q", merged[domain.IntentGoodbye])
	}
	if len(merged) != len(DefaultReplies()) {
		t.Fatalf("merge must keep full smalltalk coverage, got %d keys", len(merged))
	}
}

func TestMergeRepliesIgnoresUnknownKeys(t *testing.T) {
	merged := MergeReplies(map[string]string{"nonsense": "boo"})
	if merged[domain.IntentFallback] != DefaultReplies()[domain.IntentFallback] {
		t.Fatalf("unknown key must not clobber the fallback reply")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/overrides.yaml"
	writeFile(t, path, "replies:\n  greeting: Hello there!\ncategories:\n  - category: tablet\n    keywords: [tablet, ipad]\n")

	o, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}
	if o.Replies["greeting"] != "Hello there!" {
		t.Fatalf("unexpected replies: %+v", o.Replies)
	}

	table := o.CategoryTable()
	if len(table) != 1 || table[0].Category != "tablet" {
		t.Fatalf("expected override category table, got %+v", table)
	}
}

func TestLoadOverridesEmptyPath(t *testing.T) {
	o, err := LoadOverrides("")
	if err != nil {
		t.Fatalf("LoadOverrides(\"\") error = %v", err)
	}
	if len(o.Replies) != 0 {
		t.Fatalf("expected zero-value overrides, got %+v", o)
	}
	if len(o.CategoryTable()) == 0 {
		t.Fatalf("expected built-in category table fallback")
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	_, err := LoadOverrides(t.TempDir() + "/nope.yaml")
	if !domain.IsKind(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}
