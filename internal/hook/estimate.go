package hook

import (
	"sort"
	"strings"

	"github.com/alexanderramin/nectime/internal/config"
)

// EstimateActivity scores each configured activity against the prompt text
// and returns the best match, or "" when nothing scores. Keywords match as
// substrings of the lowercased prompt; extensions match ".ext" mentions,
// which catches file paths pasted into prompts.
func EstimateActivity(prompt string, rules map[string]config.AutoActivityRule) string {
	if prompt == "" || len(rules) == 0 {
		return ""
	}
	lower := strings.ToLower(prompt)

	best, bestScore := "", 0
	for _, key := range sortedKeys(rules) {
		rule := rules[key]
		score := 0
		for _, kw := range rule.Keywords {
			score += strings.Count(lower, strings.ToLower(kw))
		}
		for _, ext := range rule.Extensions {
			ext = strings.ToLower(strings.TrimPrefix(ext, "."))
			score += strings.Count(lower, "."+ext)
		}
		if score > bestScore {
			best, bestScore = key, score
		}
	}
	return best
}

// sortedKeys makes tie-breaking between equally scored activities stable.
func sortedKeys(rules map[string]config.AutoActivityRule) []string {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
