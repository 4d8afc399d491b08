// Package classifier maps free-text queries to coordination intents with
// a deterministic, case-insensitive keyword ladder. The ladder is an
// explicit ordered slice so tests can enumerate precedence directly.
package classifier

import (
	"strings"

	contractx "github.com/pattarab/supportflow/agent/contract"
)

var (
	simpleDataPhrases    = []string{"get customer", "customer information", "show customer"}
	simpleDataExclusions = []string{"help", "support", "upgrade", "issue"}

	escalationPhrases = []string{"charged twice", "refund immediately", "urgent", "emergency"}

	actionWords = []string{"update", "show", "get", "create", "list"}

	analysisPhrases = []string{"all customers", "high-priority tickets", "open tickets", "active customers"}

	supportWords = []string{"help", "support", "upgrade", "cancel", "issue"}
)

type rule struct {
	intent contractx.Intent
	match  func(query string) bool
}

// rules is evaluated top to bottom, first match wins. A query matching a
// rule's positive phrases but tripping its exclusions falls through to
// the later rules rather than short-circuiting.
var rules = []rule{
	{contractx.IntentSimpleDataQuery, func(q string) bool {
		return containsAny(q, simpleDataPhrases) && !containsAny(q, simpleDataExclusions)
	}},
	{contractx.IntentEscalation, func(q string) bool {
		return containsAny(q, escalationPhrases)
	}},
	{contractx.IntentMultiIntent, func(q string) bool {
		return countPresent(q, actionWords) >= 2
	}},
	{contractx.IntentComplexAnalysis, func(q string) bool {
		return containsAny(q, analysisPhrases)
	}},
	{contractx.IntentCoordinatedSupport, func(q string) bool {
		return containsAny(q, supportWords)
	}},
}

// Classify is pure and total: every input maps to exactly one intent,
// with IntentGeneral as the terminal fallback.
func Classify(text string) contractx.Intent {
	query := strings.ToLower(text)
	for _, r := range rules {
		if r.match(query) {
			return r.intent
		}
	}
	return contractx.IntentGeneral
}

func containsAny(query string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(query, p) {
			return true
		}
	}
	return false
}

func countPresent(query string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(query, w) {
			n++
		}
	}
	return n
}
