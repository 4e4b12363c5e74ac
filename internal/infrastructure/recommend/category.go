package recommend

import "strings"

// CategoryKeywords maps one catalog category to its trigger keywords.
// Order matters: the first category with any substring hit wins, so the
// table defines a deterministic precedence.
type CategoryKeywords struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultCategoryKeywords is the built-in precedence table. A YAML override
// file can replace it wholesale.
func DefaultCategoryKeywords() []CategoryKeywords {
	return []CategoryKeywords{
		{Category: "phone", Keywords: []string{"phone", "smartphone", "mobile", "camera phone"}},
		{Category: "laptop", Keywords: []string{"laptop", "notebook", "ultrabook"}},
		{Category: "headphone", Keywords: []string{"headphone", "headphones", "headset", "earphone", "earbuds"}},
		{Category: "camera", Keywords: []string{"camera", "vlog", "vlogging"}},
		{Category: "accessory", Keywords: []string{"accessory", "powerbank", "charger", "cable", "microphone", "mic"}},
		{Category: "wearable", Keywords: []string{"watch", "smartwatch", "fitness"}},
		{Category: "gaming", Keywords: []string{"console", "gaming"}},
	}
}

// GuessCategory returns the first category whose keyword list has a
// substring hit in the lower-cased text.
func GuessCategory(text string, table []CategoryKeywords) (string, bool) {
	lowered := strings.ToLower(text)
	for _, row := range table {
		for _, keyword := range row.Keywords {
			if strings.Contains(lowered, keyword) {
				return row.Category, true
			}
		}
	}
	return "", false
}
