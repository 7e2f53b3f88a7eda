package assistant

import (
	"strings"
	"unicode"
)

type intent string

const (
	intentGreeting       intent = "greeting"
	intentUpload         intent = "upload"
	intentThanks         intent = "thanks"
	intentWasteStats     intent = "waste_stats"
	intentTips           intent = "tips"
	intentSustainability intent = "sustainability"
	intentFallback       intent = "fallback"
)

var offlineReplies = map[intent]string{
	intentGreeting:       "Hello! How can I help with food waste today?",
	intentUpload:         "Please select and upload a clear photo of your food item.",
	intentThanks:         "You're welcome! Happy to help.",
	intentWasteStats:     "Here's what I know about your waste patterns: ask me for your total waste, most wasted category or average daily waste.",
	intentTips:           "Try meal planning to reduce waste!",
	intentSustainability: "Food waste reduction helps the planet!",
	intentFallback:       "I'm not sure I understand. Ask about waste stats or tips!",
}

// rules are checked in order; the first rule with a matching word wins.
var rules = []struct {
	intent intent
	match  func(word string) bool
}{
	{intentGreeting, oneOf("hello", "hi", "hey")},
	{intentUpload, oneOf("upload")},
	{intentThanks, oneOf("thank", "thanks")},
	{intentWasteStats, oneOf("waste", "quantity", "total")},
	{intentTips, oneOf("tip", "tips", "reduce", "prevent")},
	{intentSustainability, func(w string) bool {
		return strings.HasPrefix(w, "sustain") || w == "planet" || w == "eco"
	}},
}

func oneOf(words ...string) func(string) bool {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return func(w string) bool {
		_, ok := set[w]
		return ok
	}
}

// classify matches whole words, so "this" is not a greeting.
func classify(message string) intent {
	words := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, rule := range rules {
		for _, w := range words {
			if rule.match(w) {
				return rule.intent
			}
		}
	}
	return intentFallback
}
