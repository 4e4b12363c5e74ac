package recommend

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	kSuffixRe = regexp.MustCompile(`(\d+)\s*k`)
	amountRe  = regexp.MustCompile(`\b\d{4,6}\b`)
)

var upperBoundCues = []string{"under", "below", "<=", "upto", "up to", "less than"}
var approxCues = []string{"around", "approx", "about"}

// ParseBudget extracts a price cap from free text: thousands separators are
// stripped, a trailing "k" multiplies by 1000, and 4-6 digit integers are
// collected. With an upper-bound or approximation cue the minimum number is
// the cap; a bare number is treated as an implicit cap too. This implicit
// rule is a known false-positive source on phone numbers and years and is
// kept deliberately.
func ParseBudget(text string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(text), ",", "")
	normalized = kSuffixRe.ReplaceAllStringFunc(normalized, func(match string) string {
		digits := kSuffixRe.FindStringSubmatch(match)[1]
		n, err := strconv.Atoi(digits)
		if err != nil {
			return match
		}
		return strconv.Itoa(n * 1000)
	})

	var numbers []int
	for _, raw := range amountRe.FindAllString(normalized, -1) {
		if n, err := strconv.Atoi(raw); err == nil {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return 0, false
	}

	switch {
	case containsAny(normalized, upperBoundCues):
		return float64(minInt(numbers)), true
	case containsAny(normalized, approxCues):
		return float64(minInt(numbers)), true
	default:
		// Bare number without a cue word: still an implicit cap.
		return float64(minInt(numbers)), true
	}
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

func minInt(values []int) int {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}
