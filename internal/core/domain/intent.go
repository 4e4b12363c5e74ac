package domain

import "strings"

// Intent is the closed-set label describing what a user utterance asks for.
// Both classifier training and dispatch share this enumeration; any value
// outside the set is coerced to IntentFallback at the boundary.
type Intent string

const (
	IntentShippingPolicy        Intent = "shipping_policy"
	IntentReturnPolicy          Intent = "return_policy"
	IntentWarranty              Intent = "warranty"
	IntentPayment               Intent = "payment"
	IntentTrackOrder            Intent = "track_order"
	IntentCancellation          Intent = "cancellation"
	IntentStoreHours            Intent = "store_hours"
	IntentGreeting              Intent = "greeting"
	IntentGoodbye               Intent = "goodbye"
	IntentThanks                Intent = "thanks"
	IntentProductRecommendation Intent = "product_recommendation"
	IntentFallback              Intent = "fallback"
)

// AllIntents returns the closed label set in its canonical order.
func AllIntents() []Intent {
	return []Intent{
		IntentShippingPolicy,
		IntentReturnPolicy,
		IntentWarranty,
		IntentPayment,
		IntentTrackOrder,
		IntentCancellation,
		IntentStoreHours,
		IntentGreeting,
		IntentGoodbye,
		IntentThanks,
		IntentProductRecommendation,
		IntentFallback,
	}
}

var intentSet = func() map[Intent]struct{} {
	set := make(map[Intent]struct{}, len(AllIntents()))
	for _, it := range AllIntents() {
		set[it] = struct{}{}
	}
	return set
}()

// ParseIntent normalizes a raw label and coerces anything outside the
// closed set to IntentFallback.
func ParseIntent(raw string) Intent {
	candidate := Intent(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := intentSet[candidate]; ok {
		return candidate
	}
	return IntentFallback
}

// Valid reports whether the intent belongs to the closed set.
func (i Intent) Valid() bool {
	_, ok := intentSet[i]
	return ok
}

// Smalltalk reports whether the intent is answered from the static
// default-reply table rather than by retrieval.
func (i Intent) Smalltalk() bool {
	switch i {
	case IntentGreeting, IntentGoodbye, IntentThanks, IntentFallback:
		return true
	}
	return false
}

// Policy reports whether the intent is answered from the FAQ knowledge base.
func (i Intent) Policy() bool {
	switch i {
	case IntentShippingPolicy, IntentReturnPolicy, IntentWarranty,
		IntentPayment, IntentTrackOrder, IntentCancellation, IntentStoreHours:
		return true
	}
	return false
}
