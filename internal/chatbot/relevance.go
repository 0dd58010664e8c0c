package chatbot

import "strings"

var relatedKeywords = []string{
	"food", "donation", "restaurant", "ngo", "surplus", "waste", "hunger",
	"donate", "leftover", "charity", "meal", "feed", "hungry", "poor",
	"distribution", "logistics", "safety", "register", "sign up", "list",
	"request", "pickup", "delivery", "volunteer", "help", "support",
}

// IsRelated substring check against the platform vocabulary. Unusually
// worded in-domain questions can be rejected.
func IsRelated(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range relatedKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

var (
	greetings = []string{"hello", "hi", "hey", "greetings"}
	farewells = []string{"exit", "quit", "bye", "goodbye"}
)

// isGreeting prefix match, so "hi there" counts.
func isGreeting(lower string) bool {
	for _, g := range greetings {
		if strings.HasPrefix(lower, g) {
			return true
		}
	}
	return false
}

// isFarewell exact match only.
func isFarewell(lower string) bool {
	for _, f := range farewells {
		if lower == f {
			return true
		}
	}
	return false
}
