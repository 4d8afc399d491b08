package supportagent

import (
	"fmt"
	"strings"
)

// Urgency is the outcome of assessing a query against the urgency ladder.
type Urgency struct {
	Urgency  string
	Priority string
	Reason   string
}

type urgencyRule struct {
	urgency  string
	priority string
	keywords []string
}

// urgencyLadder is scanned top to bottom. Within a rule, the keyword
// whose first occurrence comes earliest in the query wins (first match,
// not best match); ladder order breaks position ties.
var urgencyLadder = []urgencyRule{
	{"high", "high", []string{
		"urgent", "immediately", "critical", "emergency", "down",
		"charged twice", "refund", "security", "breach",
	}},
	{"medium", "medium", []string{
		"issue", "problem", "not working", "broken", "help",
	}},
}

func AssessUrgency(query string) Urgency {
	q := strings.ToLower(query)
	for _, rule := range urgencyLadder {
		if kw, ok := firstKeyword(q, rule.keywords); ok {
			return Urgency{
				Urgency:  rule.urgency,
				Priority: rule.priority,
				Reason:   fmt.Sprintf("Contains %s-urgency keyword: %s", rule.urgency, kw),
			}
		}
	}
	return Urgency{Urgency: "low", Priority: "low", Reason: "General inquiry"}
}

func firstKeyword(query string, keywords []string) (string, bool) {
	best := -1
	match := ""
	for _, kw := range keywords {
		idx := strings.Index(query, kw)
		if idx < 0 {
			continue
		}
		if best == -1 || idx < best {
			best = idx
			match = kw
		}
	}
	return match, best >= 0
}

type responseRule struct {
	keywords []string
	respond  func(name string) string
}

// responseLadder is first-match-wins; categories overlap textually, so
// the order is part of the behavior.
var responseLadder = []responseRule{
	{[]string{"upgrade"}, func(name string) string {
		return fmt.Sprintf("Hello %s! I'd be happy to help you upgrade your account. Let me check your current status and available options.", name)
	}},
	{[]string{"cancel"}, func(name string) string {
		return fmt.Sprintf("Hello %s, I understand you're considering cancellation. Before we proceed, I'd like to understand your concerns. What's prompting this decision?", name)
	}},
	{[]string{"refund", "charge"}, func(name string) string {
		return fmt.Sprintf("Hello %s, I apologize for any billing issues. I'll escalate this to our billing team immediately. Can you provide more details?", name)
	}},
	{[]string{"help", "support"}, func(name string) string {
		return fmt.Sprintf("Hello %s! I'm here to help with your inquiry. What can I assist you with today?", name)
	}},
}

func GenerateResponse(query, name string) string {
	q := strings.ToLower(query)
	for _, rule := range responseLadder {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.respond(name)
			}
		}
	}
	return fmt.Sprintf("Hello %s! Thank you for reaching out. I'm reviewing your request and will provide assistance shortly.", name)
}
